package apperrors

import (
	"github.com/palemoky/schnapsen/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: protocol.ErrorMessages[protocol.ErrCodeRoomNotFound]}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: protocol.ErrorMessages[protocol.ErrCodeRoomFull]}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: protocol.ErrorMessages[protocol.ErrCodeNotInRoom]}
	ErrGameStarted  = &GameError{Code: protocol.ErrCodeGameStarted, Message: protocol.ErrorMessages[protocol.ErrCodeGameStarted]}
	ErrGameNotStart = &GameError{Code: protocol.ErrCodeGameNotStart, Message: protocol.ErrorMessages[protocol.ErrCodeGameNotStart]}

	// 规则引擎的拒绝都是一等返回值，引擎本身不会因玩家输入而 panic
	ErrNotYourTurn         = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: protocol.ErrorMessages[protocol.ErrCodeNotYourTurn]}
	ErrCardNotInHand       = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: protocol.ErrorMessages[protocol.ErrCodeCardNotInHand]}
	ErrConstraintViolation = &GameError{Code: protocol.ErrCodeConstraintViolation, Message: protocol.ErrorMessages[protocol.ErrCodeConstraintViolation]}
	ErrFarbzwang           = &GameError{Code: protocol.ErrCodeFarbzwang, Message: protocol.ErrorMessages[protocol.ErrCodeFarbzwang]}
	ErrStichzwang          = &GameError{Code: protocol.ErrCodeStichzwang, Message: protocol.ErrorMessages[protocol.ErrCodeStichzwang]}
	ErrTrumpfzwang         = &GameError{Code: protocol.ErrCodeTrumpfzwang, Message: protocol.ErrorMessages[protocol.ErrCodeTrumpfzwang]}
	ErrInvalidAnnouncement = &GameError{Code: protocol.ErrCodeInvalidAnnouncement, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidAnnouncement]}
	ErrInvalidExchange     = &GameError{Code: protocol.ErrCodeInvalidExchange, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidExchange]}
	ErrTalonEmpty          = &GameError{Code: protocol.ErrCodeTalonEmpty, Message: protocol.ErrorMessages[protocol.ErrCodeTalonEmpty]}
	ErrTalonAlreadyClosed  = &GameError{Code: protocol.ErrCodeTalonAlreadyClosed, Message: protocol.ErrorMessages[protocol.ErrCodeTalonAlreadyClosed]}
)
