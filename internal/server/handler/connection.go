package handler

import (
	"log"
	"time"

	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/server/session"
	"github.com/palemoky/schnapsen/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 验证重连令牌
	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "重连令牌无效或已过期"))
		return
	}

	// 获取旧会话
	playerSession := h.sessionManager.GetSession(payload.PlayerID)
	if playerSession == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "会话不存在"))
		return
	}

	oldID := client.GetID()

	// 从旧 ID 注销，用新 ID 注册
	h.server.UnregisterClient(oldID)
	h.server.RegisterClient(playerSession.PlayerID, client)

	// 标记会话上线
	h.sessionManager.SetOnline(playerSession.PlayerID)

	// 构建重连响应
	reconnectPayload := protocol.ReconnectedPayload{
		PlayerID:   playerSession.PlayerID,
		PlayerName: playerSession.PlayerName,
	}

	// 如果在房间中，尝试恢复房间信息
	if playerSession.RoomCode != "" {
		h.tryRestoreRoomState(client, playerSession, &reconnectPayload)
	}

	// 发送重连成功消息
	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, reconnectPayload))

	log.Printf("🔄 玩家 %s (%s) 重连成功", playerSession.PlayerName, playerSession.PlayerID)
}

// tryRestoreRoomState 尝试恢复房间状态
func (h *Handler) tryRestoreRoomState(client types.ClientInterface, playerSession *session.PlayerSession, payload *protocol.ReconnectedPayload) {
	room := h.roomManager.GetRoom(playerSession.RoomCode)
	if room == nil {
		return
	}

	oldClient := h.server.GetClientByID(playerSession.PlayerID)
	if oldClient == nil {
		return
	}

	// 重连到房间
	if err := h.roomManager.ReconnectPlayer(oldClient, client); err != nil {
		log.Printf("重连到房间失败: %v", err)
		return
	}

	client.SetRoom(playerSession.RoomCode)
	payload.RoomCode = playerSession.RoomCode

	// 如果游戏正在进行，恢复游戏状态并续上计时
	if gameSession := h.GetGameSession(playerSession.RoomCode); gameSession != nil {
		gameSession.PlayerOnline(playerSession.PlayerID)
		payload.GameState = gameSession.BuildGameStateDTO(playerSession.PlayerID, h.sessionManager)
	}
}
