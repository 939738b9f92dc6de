package session

import (
	"github.com/palemoky/schnapsen/internal/game/room"
)

// Type aliases for backward compatibility
type (
	RoomState = room.RoomState
)

// Re-export room state constants
const (
	RoomStateWaiting = room.RoomStateWaiting
	RoomStatePlaying = room.RoomStatePlaying
	RoomStateEnded   = room.RoomStateEnded
)

// OnlineChecker 在线状态查询，SessionManager 满足该接口
type OnlineChecker interface {
	IsOnline(playerID string) bool
}
