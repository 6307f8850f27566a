package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeNameTaken    = 2004 // 昵称已被占用

	ErrCodeGameNotStart      = 3001
	ErrCodeNotYourTurn       = 3002
	ErrCodeInvalidAction     = 3003 // 当前状态下不允许该操作
	ErrCodeNotDealer         = 3004 // 仅庄家可操作
	ErrCodeNotEnoughPoints   = 3005 // 未到补牌线不能停牌
	ErrCodePlayerNotFinished = 3006 // 闲家未停牌不能开牌
	ErrCodeDealerHandTooLow  = 3007 // 庄家未到开牌线
	ErrCodeGameNotFinished   = 3008 // 本局未结束不能重开
	ErrCodeDeckExhausted     = 3009 // 牌堆耗尽，本局作废
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeRoomNotFound:      "房间不存在",
	ErrCodeRoomFull:          "房间已满",
	ErrCodeNotInRoom:         "您不在房间中",
	ErrCodeNameTaken:         "昵称已被占用",
	ErrCodeGameNotStart:      "游戏尚未开始",
	ErrCodeNotYourTurn:       "还没轮到您",
	ErrCodeInvalidAction:     "当前不能执行该操作",
	ErrCodeNotDealer:         "只有庄家可以执行该操作",
	ErrCodeNotEnoughPoints:   "点数未到补牌线，不能停牌",
	ErrCodePlayerNotFinished: "对方还没停牌，不能开牌",
	ErrCodeDealerHandTooLow:  "庄家未到 16 点，不能开牌",
	ErrCodeGameNotFinished:   "本局还没结束，不能重开",
	ErrCodeDeckExhausted:     "牌堆已耗尽，请庄家重开一局",
}
