package apperrors

import (
	"errors"

	"github.com/palemoky/xi-dach/internal/game/xidach"
	"github.com/palemoky/xi-dach/internal/protocol"
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
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrNameTaken    = &GameError{Code: protocol.ErrCodeNameTaken, Message: "昵称已被占用"}

	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrNotDealer       = &GameError{Code: protocol.ErrCodeNotDealer, Message: "只有庄家可以执行该操作"}
	ErrGameNotFinished = &GameError{Code: protocol.ErrCodeGameNotFinished, Message: "本局还没结束，不能重开"}
)

// FromGame 将状态机错误映射为带协议错误码的 GameError
func FromGame(err error) *GameError {
	code := protocol.ErrCodeUnknown
	switch {
	case errors.Is(err, xidach.ErrRoomFull):
		code = protocol.ErrCodeRoomFull
	case errors.Is(err, xidach.ErrInvalidState), errors.Is(err, xidach.ErrInvalidStatus),
		errors.Is(err, xidach.ErrNoPlayers), errors.Is(err, xidach.ErrUnknownPlayer):
		code = protocol.ErrCodeInvalidAction
	case errors.Is(err, xidach.ErrDeckExhausted):
		code = protocol.ErrCodeDeckExhausted
	case errors.Is(err, xidach.ErrNotEnoughPoints):
		code = protocol.ErrCodeNotEnoughPoints
	case errors.Is(err, xidach.ErrNotDealer):
		code = protocol.ErrCodeNotDealer
	case errors.Is(err, xidach.ErrPlayerNotFinished):
		code = protocol.ErrCodePlayerNotFinished
	case errors.Is(err, xidach.ErrDealerHandTooLow):
		code = protocol.ErrCodeDealerHandTooLow
	}
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}
