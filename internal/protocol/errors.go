package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004 // 游戏已开始

	ErrCodeGameNotStart        = 3001
	ErrCodeNotYourTurn         = 3002
	ErrCodeCardNotInHand       = 3003
	ErrCodeConstraintViolation = 3004 // 必须打出报过的 K/Q
	ErrCodeFarbzwang           = 3005 // 必须跟牌
	ErrCodeStichzwang          = 3006 // 必须大过首攻牌
	ErrCodeTrumpfzwang         = 3007 // 必须出将牌
	ErrCodeInvalidAnnouncement = 3008
	ErrCodeInvalidExchange     = 3009
	ErrCodeTalonEmpty          = 3010
	ErrCodeTalonAlreadyClosed  = 3011

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "未知错误",
	ErrCodeInvalidMsg: "无效的消息格式",
	ErrCodeRateLimit:  "请求过于频繁",

	ErrCodeRoomNotFound: "房间不存在",
	ErrCodeRoomFull:     "房间已满",
	ErrCodeNotInRoom:    "您不在房间中",
	ErrCodeGameStarted:  "游戏已开始",

	ErrCodeGameNotStart:        "游戏尚未开始",
	ErrCodeNotYourTurn:         "还没轮到您",
	ErrCodeCardNotInHand:       "这张牌不在您手中",
	ErrCodeConstraintViolation: "必须打出报叫花色的 K 或 Q",
	ErrCodeFarbzwang:           "Farbzwang：必须跟出首攻花色",
	ErrCodeStichzwang:          "Stichzwang：能吃牌时必须吃牌",
	ErrCodeTrumpfzwang:         "Trumpfzwang：无法跟牌时必须出将牌",
	ErrCodeInvalidAnnouncement: "无法报叫：需要同花色的 K 和 Q，且必须在出牌前",
	ErrCodeInvalidExchange:     "无法换将牌：需要将牌 J，且必须在出牌前",
	ErrCodeTalonEmpty:          "牌堆已空",
	ErrCodeTalonAlreadyClosed:  "牌堆已经扣下",

	ErrCodeServerMaintenance: "服务器维护中",
}
