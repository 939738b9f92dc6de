package engine

import (
	"github.com/palemoky/schnapsen/internal/game/card"
)

// Constraint 出牌约束。目前只有一种：报叫后下一张必须打出该花色的 K 或 Q
type Constraint struct {
	Suit card.Suit `json:"suit"`
}

// Play 一墩中的一手牌
type Play struct {
	Seat int       `json:"seat"`
	Card card.Card `json:"card"`
}

// Trick 一墩完整的两手牌
type Trick [2]Play

// Player 引擎内的玩家状态。
// Hand/Tricks/Points/PendingPoints/FirstTrick/Constraint 每局重置；
// BummerlPoints 只在重开比赛时清零；MatchWins 伴随整个会话。
type Player struct {
	Hand          []card.Card
	Tricks        []Trick
	Points        int // 本局得分，打满 66 获胜
	PendingPoints int // 赢下第一墩前报叫的分，暂存待入账
	BummerlPoints int // Bummerl 计分 0-7
	MatchWins     int
	Constraint    *Constraint
	FirstTrick    *Trick // 本局赢下的第一墩，留作展示，最多设置一次
}

// resetForRound 清空单局状态，Bummerl 与 MatchWins 不动
func (p *Player) resetForRound() {
	p.Hand = nil
	p.Tricks = nil
	p.Points = 0
	p.PendingPoints = 0
	p.Constraint = nil
	p.FirstTrick = nil
}

// hasCard 检查手牌中是否有指定的牌
func (p *Player) hasCard(c card.Card) bool {
	return card.Contains(p.Hand, c)
}

// holds 检查手牌中是否有指定花色和牌面的牌
func (p *Player) holds(suit card.Suit, rank card.Rank) bool {
	return card.Contains(p.Hand, card.Card{Suit: suit, Rank: rank})
}

// removeCard 从手牌移除指定的牌
func (p *Player) removeCard(c card.Card) bool {
	hand, ok := card.Remove(p.Hand, c)
	if ok {
		p.Hand = hand
	}
	return ok
}

// bankPending 把暂存的报叫分入账
func (p *Player) bankPending() {
	if p.PendingPoints > 0 {
		p.Points += p.PendingPoints
		p.PendingPoints = 0
	}
}
