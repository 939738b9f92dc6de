package handler

import (
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.leaveCurrentRoom(client)
	}

	room, err := h.roomManager.CreateRoom(client)
	if err != nil {
		sendGameError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.leaveCurrentRoom(client)
	}

	room, err := h.roomManager.JoinRoom(client, payload.RoomCode)
	if err != nil {
		sendGameError(client, err)
		return
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: room.Code,
		Player:   room.GetPlayerInfo(client.GetID()),
		Players:  room.GetAllPlayersInfo(),
	}))
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.leaveCurrentRoom(client)
}

// leaveCurrentRoom 离开当前房间并丢弃对应的游戏会话
func (h *Handler) leaveCurrentRoom(client types.ClientInterface) {
	roomCode := client.GetRoom()
	h.roomManager.LeaveRoom(client)
	if roomCode != "" && h.roomManager.GetRoom(roomCode) == nil {
		// 房间已随人走空而销毁
		h.SetGameSession(roomCode, nil)
	}
}

// handleQuickMatch 处理快速匹配
func (h *Handler) handleQuickMatch(client types.ClientInterface) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(codec.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停快速匹配"))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.leaveCurrentRoom(client)
	}

	h.matcher.AddToQueue(client)
}

// handleReady 处理准备，双方都准备好就开局
func (h *Handler) handleReady(client types.ClientInterface, ready bool) {
	allReady, err := h.roomManager.SetPlayerReady(client, ready)
	if err != nil {
		sendGameError(client, err)
		return
	}

	if allReady {
		if r := h.roomManager.GetRoom(client.GetRoom()); r != nil {
			h.StartGame(r)
		}
	}
}
