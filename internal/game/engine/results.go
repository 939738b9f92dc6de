package engine

import (
	"github.com/palemoky/schnapsen/internal/game/card"
)

// 引擎的每个动作同步返回一个结果值或类型化拒绝，结果即变更清单：
// 传输层只负责把它转成消息广播出去，引擎返回时状态已经完全推进。

// MoveMade 单张出牌被接受，一墩尚未结束
type MoveMade struct {
	Seat     int
	Card     card.Card
	NextSeat int
}

// TrickResult 一墩结束、对局继续
type TrickResult struct {
	Winner           int
	Cards            Trick
	Points           int // 本墩分值
	WinnerTotal      int
	LoserTotal       int
	Dealt            [2]*card.Card // 按座位下标的补牌，nil 表示没有摸牌
	TalonSize        int           // 含翻开的将牌
	TalonClosed      bool
	WinnerFirstTrick *Trick
}

// RoundResult 本局结束
type RoundResult struct {
	Winner          int
	Loser           int
	VictoryPoints   int // 胜者赢得的 Bummerl 分（1-3）
	WinnerBummerl   int
	LoserBummerl    int
	WinnerPoints    int
	LoserPoints     int
	TrickCards      []Play // 末墩的牌，报叫即胜时为空
	MatchOver       bool
	WinnerMatchWins int
}

// PlayOutcome 出牌结果，三个字段恰有一个非空
type PlayOutcome struct {
	Move  *MoveMade
	Trick *TrickResult
	Round *RoundResult
}

// AnnounceResult 报叫结果。Round 非空表示报叫分直接打满 66、本局即刻结束
type AnnounceResult struct {
	Seat   int
	Suit   card.Suit
	Points int
	Trump  bool
	Round  *RoundResult
}

// ExchangeResult 换将牌结果
type ExchangeResult struct {
	Seat         int
	NewTrumpCard card.Card // 换下去的将牌 J
	ReceivedCard card.Card // 玩家拿到的原翻开将牌
}

// Announcement 报叫日志条目，只增不改
type Announcement struct {
	Seat   int       `json:"seat"`
	Suit   card.Suit `json:"suit"`
	Points int       `json:"points"` // 20 或 40
}
