package room

import (
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/types"
)

// Broadcast 广播消息给房间内所有玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcast(msg)
}

// broadcast 内部广播，调用方持锁
func (r *Room) broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		if player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastExcept(excludeID, msg)
}

// broadcastExcept 内部广播，调用方持锁
func (r *Room) broadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID && player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// checkAllReady 检查是否所有玩家都准备好，调用方持锁
func (r *Room) checkAllReady() bool {
	if len(r.Players) < maxPlayers {
		return false
	}
	for _, player := range r.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

// GetPlayerInfo 获取玩家信息
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerInfo(playerID)
}

// playerInfo 内部取玩家信息，调用方持锁。
// 牌局相关字段由游戏会话补充，房间层只填身份和状态
func (r *Room) playerInfo(playerID string) protocol.PlayerInfo {
	player := r.Players[playerID]
	info := protocol.PlayerInfo{
		Seat:   player.Seat,
		Ready:  player.Ready,
		Online: player.Client != nil,
	}
	if player.Client != nil {
		info.ID = player.Client.GetID()
		info.Name = player.Client.GetName()
	} else {
		info.ID = playerID
	}
	return info
}

// GetAllPlayersInfo 按座位顺序获取所有玩家信息
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.playerInfo(id))
	}
	return infos
}

// SetState 设置房间状态
func (r *Room) SetState(state RoomState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = state
}

// GetState 获取房间状态
func (r *Room) GetState() RoomState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.State
}

// GetPlayerOrder 按座位顺序返回玩家 ID
func (r *Room) GetPlayerOrder() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order := make([]string, len(r.PlayerOrder))
	copy(order, r.PlayerOrder)
	return order
}

// GetClient 获取玩家的客户端连接，掉线时返回 false
func (r *Room) GetClient(playerID string) (types.ClientInterface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, exists := r.Players[playerID]
	if !exists || player.Client == nil {
		return nil, false
	}
	return player.Client, true
}
