package xidach

import "errors"

// 状态机校验错误，由调用方映射为协议错误码
var (
	ErrRoomFull          = errors.New("room full")
	ErrInvalidState      = errors.New("invalid game state")
	ErrNoPlayers         = errors.New("no players to deal")
	ErrDeckExhausted     = errors.New("deck exhausted")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrNotEnoughPoints   = errors.New("not enough points")
	ErrNotDealer         = errors.New("not dealer")
	ErrPlayerNotFinished = errors.New("player not finished")
	ErrDealerHandTooLow  = errors.New("dealer hand too low")
	ErrUnknownPlayer     = errors.New("unknown player")
)
