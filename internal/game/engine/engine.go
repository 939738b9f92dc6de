package engine

import (
	"fmt"

	"github.com/palemoky/schnapsen/internal/apperrors"
	"github.com/palemoky/schnapsen/internal/game/card"
	"github.com/palemoky/schnapsen/internal/game/rule"
)

// Phase 对局阶段
type Phase int

const (
	PhaseInit      Phase = iota // 尚未发牌
	PhasePlaying                // 对局进行中
	PhaseRoundOver              // 一局结束，等待下一局
	PhaseMatchOver              // 比赛结束（有人 Bummerl 打满 7）
)

const (
	handSize = 5  // 每人 5 张手牌
	winScore = 66 // 打满 66 即胜
	matchWin = 7  // Bummerl 打满 7 赢下比赛
)

// Round 两人 Schnapsen 的回合引擎。
// 引擎本身不做 I/O、不起定时器、没有内部并发；同一实例的调用必须由
// 外层（每个房间一把锁）串行化。所有动作要么完整生效、要么原样拒绝，
// 不存在半途而废的状态。
type Round struct {
	players [2]*Player
	phase   Phase

	dealerSeat int // 发牌方，每局轮换；非发牌方先手
	turnSeat   int // 当前轮到谁行动

	talon     []card.Card // 未发的牌堆，有序
	trumpCard *card.Card  // 翻开的将牌，nil 表示已被摸走
	trumpSuit card.Suit   // 本局将牌花色，发牌时确定后不再变

	currentTrick  []Play // 0、1 或 2 手，结算前绝不超过 2
	announcements []Announcement

	// 扣牌与牌堆耗尽是两个独立状态，分别触发不同的规则分支
	talonClosed bool
	closerSeat  int // -1 表示没人扣牌
}

// NewRound 创建空引擎。座位 0 先做发牌方，所以座位 1 在首局先手
func NewRound() *Round {
	return &Round{
		players:    [2]*Player{{}, {}},
		phase:      PhaseInit,
		closerSeat: -1,
	}
}

// opponent 返回对手座位
func opponent(seat int) int {
	return (seat + 1) % 2
}

// StartRound 洗牌发牌并进入对局。发牌顺序：双方各 3 张、再各 2 张，
// 下一张翻开作将牌，余下 9 张为牌堆
func (r *Round) StartRound() {
	deck := card.NewDeck()
	if len(deck) != card.DeckSize {
		// 牌堆构造坏掉属于程序错误，不是可恢复的玩家输入
		panic(fmt.Sprintf("deck has %d cards, want %d", len(deck), card.DeckSize))
	}
	deck.Shuffle()

	for _, p := range r.players {
		p.resetForRound()
	}

	first := opponent(r.dealerSeat)
	second := r.dealerSeat
	deck = r.deal(deck, first, 3)
	deck = r.deal(deck, second, 3)
	deck = r.deal(deck, first, 2)
	deck = r.deal(deck, second, 2)

	trump := deck[0]
	r.trumpCard = &trump
	r.trumpSuit = trump.Suit
	r.talon = deck[1:]

	r.currentTrick = nil
	r.announcements = nil
	r.talonClosed = false
	r.closerSeat = -1
	r.turnSeat = first
	r.phase = PhasePlaying
}

// deal 从牌堆顶给座位发 n 张
func (r *Round) deal(deck card.Deck, seat, n int) card.Deck {
	r.players[seat].Hand = append(r.players[seat].Hand, deck[:n]...)
	return deck[n:]
}

// ResetRound 轮换发牌方并开始新的一局，上一局的回合状态整体作废
func (r *Round) ResetRound() {
	r.dealerSeat = opponent(r.dealerSeat)
	r.StartRound()
}

// ResetMatch 清零双方 Bummerl 后重新开局。MatchWins 保留
func (r *Round) ResetMatch() {
	for _, p := range r.players {
		p.BummerlPoints = 0
	}
	r.ResetRound()
}

// PlayCard 处理出牌。前置条件按顺序检查，任何一条不满足都原样拒绝
func (r *Round) PlayCard(seat int, c card.Card) (*PlayOutcome, error) {
	if r.phase != PhasePlaying {
		return nil, apperrors.ErrGameNotStart
	}
	if seat != r.turnSeat {
		return nil, apperrors.ErrNotYourTurn
	}

	player := r.players[seat]
	if !player.hasCard(c) {
		return nil, apperrors.ErrCardNotInHand
	}

	if player.Constraint != nil {
		want := player.Constraint.Suit
		if c.Suit != want || (c.Rank != card.RankK && c.Rank != card.RankQ) {
			return nil, apperrors.ErrConstraintViolation
		}
	}

	// 严格规则只在牌堆扣下或抓完后的跟牌上生效
	if (len(r.talon) == 0 || r.talonClosed) && len(r.currentTrick) == 1 {
		lead := r.currentTrick[0].Card
		if err := rule.ValidateResponse(player.Hand, lead, c, r.trumpSuit); err != nil {
			return nil, err
		}
	}

	// 校验全部通过，从这里开始才改状态
	player.Constraint = nil
	player.removeCard(c)
	r.currentTrick = append(r.currentTrick, Play{Seat: seat, Card: c})

	if len(r.currentTrick) == 1 {
		r.turnSeat = opponent(seat)
		return &PlayOutcome{Move: &MoveMade{Seat: seat, Card: c, NextSeat: r.turnSeat}}, nil
	}

	return r.resolveTrick(), nil
}

// resolveTrick 结算一墩：定胜负、记分、入账暂存分、补牌、判局终
func (r *Round) resolveTrick() *PlayOutcome {
	lead, follow := r.currentTrick[0], r.currentTrick[1]

	winnerSeat := lead.Seat
	if rule.FollowerWins(lead.Card, follow.Card, r.trumpSuit) {
		winnerSeat = follow.Seat
	}
	winner := r.players[winnerSeat]
	loserSeat := opponent(winnerSeat)

	points := rule.TrickValue(lead.Card, follow.Card)
	winner.Points += points
	winner.bankPending()

	trick := Trick{lead, follow}
	winner.Tricks = append(winner.Tricks, trick)
	if winner.FirstTrick == nil {
		winner.FirstTrick = &trick
	}

	r.currentTrick = nil

	if winner.Points >= winScore {
		return &PlayOutcome{Round: r.endRound(winnerSeat, loserSeat, trick[:])}
	}

	// 胜者先手下一墩
	r.turnSeat = winnerSeat

	// 牌堆未扣且有牌时补牌：胜者先摸，败者后摸；牌堆摸空时翻开的将牌垫底
	var dealt [2]*card.Card
	if len(r.talon) > 0 && !r.talonClosed {
		winnerCard := r.talon[0]
		r.talon = r.talon[1:]
		winner.Hand = append(winner.Hand, winnerCard)
		dealt[winnerSeat] = &winnerCard

		var loserCard card.Card
		if len(r.talon) > 0 {
			loserCard = r.talon[0]
			r.talon = r.talon[1:]
		} else {
			loserCard = *r.trumpCard
			r.trumpCard = nil
		}
		r.players[loserSeat].Hand = append(r.players[loserSeat].Hand, loserCard)
		dealt[loserSeat] = &loserCard
	}

	// 手牌打空：扣牌局里扣牌方必须已经打满 66，走到这里即宣告失败；
	// 没扣过牌则末墩胜者赢下本局
	if len(winner.Hand) == 0 && (len(r.talon) == 0 || r.talonClosed) {
		roundWinner, roundLoser := winnerSeat, loserSeat
		if r.talonClosed && r.closerSeat == winnerSeat {
			roundWinner, roundLoser = loserSeat, winnerSeat
		}
		return &PlayOutcome{Round: r.endRound(roundWinner, roundLoser, trick[:])}
	}

	return &PlayOutcome{Trick: &TrickResult{
		Winner:           winnerSeat,
		Cards:            trick,
		Points:           points,
		WinnerTotal:      winner.Points,
		LoserTotal:       r.players[loserSeat].Points,
		Dealt:            dealt,
		TalonSize:        r.TalonSize(),
		TalonClosed:      r.talonClosed,
		WinnerFirstTrick: winner.FirstTrick,
	}}
}

// Announce 报叫同花色的 K+Q。只能在自己回合开始、本墩还没出牌时报
func (r *Round) Announce(seat int, suit card.Suit) (*AnnounceResult, error) {
	if r.phase != PhasePlaying {
		return nil, apperrors.ErrGameNotStart
	}
	if seat != r.turnSeat {
		return nil, apperrors.ErrNotYourTurn
	}
	if len(r.currentTrick) > 0 {
		return nil, apperrors.ErrInvalidAnnouncement
	}

	player := r.players[seat]
	if !player.holds(suit, card.RankK) || !player.holds(suit, card.RankQ) {
		return nil, apperrors.ErrInvalidAnnouncement
	}

	points := rule.MarriageValue(suit, r.trumpSuit)
	isTrump := suit == r.trumpSuit

	// 赢过墩的直接入账，没赢过的暂存，等第一墩到手再一次性入账
	if len(player.Tricks) > 0 {
		player.Points += points
	} else {
		player.PendingPoints += points
	}

	player.Constraint = &Constraint{Suit: suit}
	r.announcements = append(r.announcements, Announcement{Seat: seat, Suit: suit, Points: points})

	result := &AnnounceResult{Seat: seat, Suit: suit, Points: points, Trump: isTrump}

	// 入账的报叫分可能直接打满 66，一墩未出也即刻终局
	if player.Points >= winScore {
		result.Round = r.endRound(seat, opponent(seat), nil)
	}

	return result, nil
}

// ExchangeTrump 用将牌 J 换走翻开的将牌。不消耗回合，也不换手
func (r *Round) ExchangeTrump(seat int) (*ExchangeResult, error) {
	if r.phase != PhasePlaying {
		return nil, apperrors.ErrGameNotStart
	}
	if seat != r.turnSeat {
		return nil, apperrors.ErrNotYourTurn
	}
	if len(r.currentTrick) > 0 || len(r.talon) == 0 || r.trumpCard == nil {
		return nil, apperrors.ErrInvalidExchange
	}

	player := r.players[seat]
	jack := card.Card{Suit: r.trumpSuit, Rank: card.RankJ}
	if !player.hasCard(jack) {
		return nil, apperrors.ErrInvalidExchange
	}

	received := *r.trumpCard
	player.removeCard(jack)
	player.Hand = append(player.Hand, received)
	r.trumpCard = &jack

	return &ExchangeResult{Seat: seat, NewTrumpCard: jack, ReceivedCard: received}, nil
}

// CloseTalon 扣下牌堆：此后不再补牌，严格规则立即生效，
// 且扣牌方必须在手牌打空前打满 66，否则输掉本局
func (r *Round) CloseTalon(seat int) error {
	if r.phase != PhasePlaying {
		return apperrors.ErrGameNotStart
	}
	if seat != r.turnSeat {
		return apperrors.ErrNotYourTurn
	}
	if len(r.talon) == 0 {
		return apperrors.ErrTalonEmpty
	}
	if r.talonClosed {
		return apperrors.ErrTalonAlreadyClosed
	}

	r.talonClosed = true
	r.closerSeat = seat
	return nil
}

// endRound 结算一局：算 Bummerl 分、记比赛胜负、推进阶段
func (r *Round) endRound(winnerSeat, loserSeat int, trickCards []Play) *RoundResult {
	winner, loser := r.players[winnerSeat], r.players[loserSeat]

	closerFailed := r.talonClosed && r.closerSeat == loserSeat
	vp := rule.VictoryPoints(loser.Points, closerFailed, len(winner.Tricks))
	winner.BummerlPoints += vp

	r.phase = PhaseRoundOver
	matchOver := winner.BummerlPoints >= matchWin
	if matchOver {
		winner.MatchWins++
		r.phase = PhaseMatchOver
	}

	return &RoundResult{
		Winner:          winnerSeat,
		Loser:           loserSeat,
		VictoryPoints:   vp,
		WinnerBummerl:   winner.BummerlPoints,
		LoserBummerl:    loser.BummerlPoints,
		WinnerPoints:    winner.Points,
		LoserPoints:     loser.Points,
		TrickCards:      trickCards,
		MatchOver:       matchOver,
		WinnerMatchWins: winner.MatchWins,
	}
}

// --- 只读视图，供重连恢复和测试使用 ---

// Phase 当前阶段
func (r *Round) CurrentPhase() Phase { return r.phase }

// TurnSeat 当前轮到的座位
func (r *Round) TurnSeat() int { return r.turnSeat }

// DealerSeat 本局发牌方
func (r *Round) DealerSeat() int { return r.dealerSeat }

// TrumpSuit 本局将牌花色
func (r *Round) TrumpSuit() card.Suit { return r.trumpSuit }

// TrumpCard 翻开的将牌，nil 表示已被摸走
func (r *Round) TrumpCard() *card.Card {
	if r.trumpCard == nil {
		return nil
	}
	c := *r.trumpCard
	return &c
}

// TalonSize 剩余可摸的牌数，含翻开的将牌
func (r *Round) TalonSize() int {
	size := len(r.talon)
	if r.trumpCard != nil {
		size++
	}
	return size
}

// TalonClosed 牌堆是否被扣下
func (r *Round) TalonClosed() bool { return r.talonClosed }

// CloserSeat 扣牌方座位，-1 表示没人扣牌
func (r *Round) CloserSeat() int { return r.closerSeat }

// Hand 座位的手牌副本
func (r *Round) Hand(seat int) []card.Card {
	hand := make([]card.Card, len(r.players[seat].Hand))
	copy(hand, r.players[seat].Hand)
	return hand
}

// Points 座位的本局得分
func (r *Round) Points(seat int) int { return r.players[seat].Points }

// PendingPoints 座位暂存未入账的报叫分
func (r *Round) PendingPoints(seat int) int { return r.players[seat].PendingPoints }

// Bummerl 座位的 Bummerl 分
func (r *Round) Bummerl(seat int) int { return r.players[seat].BummerlPoints }

// MatchWins 座位赢下的比赛场数
func (r *Round) MatchWins(seat int) int { return r.players[seat].MatchWins }

// TrickCount 座位赢下的墩数
func (r *Round) TrickCount(seat int) int { return len(r.players[seat].Tricks) }

// FirstTrick 座位本局赢下的第一墩，nil 表示还没赢过
func (r *Round) FirstTrick(seat int) *Trick { return r.players[seat].FirstTrick }

// CurrentTrick 当前墩的已出牌副本
func (r *Round) CurrentTrick() []Play {
	trick := make([]Play, len(r.currentTrick))
	copy(trick, r.currentTrick)
	return trick
}

// Announcements 报叫日志副本
func (r *Round) Announcements() []Announcement {
	log := make([]Announcement, len(r.announcements))
	copy(log, r.announcements)
	return log
}

// CardCount 对局中所有位置的牌数合计：双方手牌 + 牌堆 + 翻开的将牌 +
// 已赢走的墩（每墩两张）。对局中任意时刻应恒等于 20
func (r *Round) CardCount() int {
	count := len(r.talon) + len(r.currentTrick)
	if r.trumpCard != nil {
		count++
	}
	for _, p := range r.players {
		count += len(p.Hand) + 2*len(p.Tricks)
	}
	return count
}
