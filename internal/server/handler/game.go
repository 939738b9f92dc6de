package handler

import (
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/server/session"
	"github.com/palemoky/schnapsen/internal/types"
)

// sessionOf 找到客户端所在房间的对局会话
func (h *Handler) sessionOf(client types.ClientInterface) *session.GameSession {
	if h.roomManager == nil {
		return nil
	}
	room := h.roomManager.GetRoom(client.GetRoom())
	if room == nil {
		return nil
	}
	return h.GetGameSession(room.Code)
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandlePlayCard(client.GetID(), payload.Card); err != nil {
		sendGameError(client, err)
	}
}

// handleAnnounce 处理报叫
func (h *Handler) handleAnnounce(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.AnnouncePayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandleAnnounce(client.GetID(), payload.Suit); err != nil {
		sendGameError(client, err)
	}
}

// handleExchangeTrump 处理换将牌
func (h *Handler) handleExchangeTrump(client types.ClientInterface) {
	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandleExchangeTrump(client.GetID()); err != nil {
		sendGameError(client, err)
	}
}

// handleCloseTalon 处理扣牌
func (h *Handler) handleCloseTalon(client types.ClientInterface) {
	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandleCloseTalon(client.GetID()); err != nil {
		sendGameError(client, err)
	}
}

// handleNextRound 处理下一局确认
func (h *Handler) handleNextRound(client types.ClientInterface) {
	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandleNextRound(client.GetID()); err != nil {
		sendGameError(client, err)
	}
}

// handleRematch 处理重赛确认
func (h *Handler) handleRematch(client types.ClientInterface) {
	gameSession := h.sessionOf(client)
	if gameSession == nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeGameNotStart))
		return
	}

	if err := gameSession.HandleRematch(client.GetID()); err != nil {
		sendGameError(client, err)
	}
}
