package session

import (
	"context"
	"sync"
	"time"

	"github.com/palemoky/schnapsen/internal/apperrors"
	"github.com/palemoky/schnapsen/internal/game/card"
	"github.com/palemoky/schnapsen/internal/game/engine"
	"github.com/palemoky/schnapsen/internal/game/room"
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/protocol/convert"
	"github.com/palemoky/schnapsen/internal/server/storage"
)

// GamePlayer 对局中的玩家，下标即座位
type GamePlayer struct {
	ID        string
	Name      string
	Seat      int
	IsOffline bool
}

// GameSessionDeps 对局会话依赖
type GameSessionDeps struct {
	Leaderboard *storage.LeaderboardManager
	RedisStore  *storage.RedisStore

	TurnTimeout      time.Duration // 出牌超时，0 表示不限时
	TrickRevealDelay time.Duration // 墩结算后补牌通知的延迟
}

// GameSession 对局会话。规则全部在 engine.Round 里，这一层只做
// 串行化、广播和计时，引擎返回的结果值就是要发出去的变更清单。
type GameSession struct {
	room    *room.Room
	deps    GameSessionDeps
	round   *engine.Round
	players []*GamePlayer // 按座位顺序

	// 下一局/重赛确认
	nextRoundReady [2]bool
	rematchReady   [2]bool

	// 超时控制
	turnTimer        *time.Timer
	offlineWaitTimer *time.Timer
	remainingTime    time.Duration
	timerStartTime   time.Time
	timerMu          sync.Mutex

	mu sync.RWMutex
}

// NewGameSession 创建对局会话
func NewGameSession(r *room.Room, deps GameSessionDeps) *GameSession {
	order := r.GetPlayerOrder()
	players := make([]*GamePlayer, len(order))
	for i, id := range order {
		name := ""
		if client, ok := r.GetClient(id); ok {
			name = client.GetName()
		}
		players[i] = &GamePlayer{
			ID:   id,
			Name: name,
			Seat: i,
		}
	}

	return &GameSession{
		room:    r,
		deps:    deps,
		round:   engine.NewRound(),
		players: players,
	}
}

// RoomCode 返回所属房间号
func (gs *GameSession) RoomCode() string {
	return gs.room.Code
}

// CurrentTurnID 返回当前行动玩家的 ID，对局未进行时为空
func (gs *GameSession) CurrentTurnID() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	if gs.round.CurrentPhase() != engine.PhasePlaying {
		return ""
	}
	return gs.players[gs.round.TurnSeat()].ID
}

// seatOf 返回玩家座位，-1 表示不在对局中
func (gs *GameSession) seatOf(playerID string) int {
	for _, p := range gs.players {
		if p.ID == playerID {
			return p.Seat
		}
	}
	return -1
}

// Start 开始对局：发牌并通知双方
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.round.StartRound()
	gs.room.SetState(RoomStatePlaying)

	gs.broadcastGameStart()
	gs.saveSnapshot()
	gs.startTurnTimer()
}

// broadcastGameStart 按座位给每人发各自的开局视图，手牌是私有的
func (gs *GameSession) broadcastGameStart() {
	trump := gs.round.TrumpCard()
	payload := protocol.GameStartPayload{
		Players:     gs.playersInfo(),
		TrumpSuit:   int(gs.round.TrumpSuit()),
		TalonSize:   gs.round.TalonSize(),
		DealerID:    gs.players[gs.round.DealerSeat()].ID,
		CurrentTurn: gs.players[gs.round.TurnSeat()].ID,
	}
	if trump != nil {
		payload.TrumpCard = convert.CardToInfo(*trump)
	}

	for _, p := range gs.players {
		payload.Hand = convert.CardsToInfos(gs.round.Hand(p.Seat))
		if client, ok := gs.room.GetClient(p.ID); ok {
			client.SendMessage(codec.MustNewMessage(protocol.MsgGameStart, payload))
		}
	}
}

// playersInfo 组装带对局数据的玩家信息
func (gs *GameSession) playersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(gs.players))
	for i, p := range gs.players {
		infos[i] = protocol.PlayerInfo{
			ID:            p.ID,
			Name:          p.Name,
			Seat:          p.Seat,
			Ready:         true,
			CardsCount:    len(gs.round.Hand(p.Seat)),
			Points:        gs.round.Points(p.Seat),
			TrickCount:    gs.round.TrickCount(p.Seat),
			BummerlPoints: gs.round.Bummerl(p.Seat),
			MatchWins:     gs.round.MatchWins(p.Seat),
			Online:        !p.IsOffline,
		}
	}
	return infos
}

// HandlePlayCard 处理出牌
func (gs *GameSession) HandlePlayCard(playerID string, info protocol.CardInfo) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	outcome, err := gs.round.PlayCard(seat, convert.InfoToCard(info))
	if err != nil {
		return err
	}

	gs.stopTimer()

	switch {
	case outcome.Move != nil:
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgMoveMade, protocol.MoveMadePayload{
			PlayerID:     playerID,
			Card:         info,
			NextPlayerID: gs.players[outcome.Move.NextSeat].ID,
		}))
		gs.startTurnTimer()

	case outcome.Trick != nil:
		gs.broadcastTrickCompleted(outcome.Trick)
		gs.startTurnTimer()

	case outcome.Round != nil:
		gs.finishRound(outcome.Round)
	}

	gs.saveSnapshot()
	return nil
}

// broadcastTrickCompleted 广播墩结算，补牌延迟后私发
func (gs *GameSession) broadcastTrickCompleted(trick *engine.TrickResult) {
	winner := gs.players[trick.Winner]
	cards := make([]protocol.CardInfo, 0, len(trick.Cards))
	for _, play := range trick.Cards {
		cards = append(cards, convert.CardToInfo(play.Card))
	}

	var firstTrick []protocol.CardInfo
	if trick.WinnerFirstTrick != nil {
		for _, play := range trick.WinnerFirstTrick {
			firstTrick = append(firstTrick, convert.CardToInfo(play.Card))
		}
	}

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrickCompleted, protocol.TrickCompletedPayload{
		WinnerID:     winner.ID,
		WinnerName:   winner.Name,
		Cards:        cards,
		Points:       trick.Points,
		WinnerTotal:  trick.WinnerTotal,
		TalonSize:    trick.TalonSize,
		TalonClosed:  trick.TalonClosed,
		NextPlayerID: winner.ID,
		FirstTrick:   firstTrick,
	}))

	// 留出亮牌时间再推送各自的新手牌
	hands := make([][]protocol.CardInfo, len(gs.players))
	for _, p := range gs.players {
		hands[p.Seat] = convert.CardsToInfos(gs.round.Hand(p.Seat))
	}
	dealt := trick.Dealt
	trumpCard := gs.round.TrumpCard()

	sendUpdates := func() {
		for _, p := range gs.players {
			payload := protocol.HandUpdatePayload{
				Hand:      hands[p.Seat],
				DealtCard: cardPtrInfo(dealt[p.Seat]),
				TrumpCard: cardPtrInfo(trumpCard),
			}
			if client, ok := gs.room.GetClient(p.ID); ok {
				client.SendMessage(codec.MustNewMessage(protocol.MsgHandUpdate, payload))
			}
		}
	}

	if gs.deps.TrickRevealDelay > 0 {
		time.AfterFunc(gs.deps.TrickRevealDelay, sendUpdates)
	} else {
		sendUpdates()
	}
}

func cardPtrInfo(c *card.Card) *protocol.CardInfo {
	if c == nil {
		return nil
	}
	info := convert.CardToInfo(*c)
	return &info
}

// HandleAnnounce 处理报叫
func (gs *GameSession) HandleAnnounce(playerID string, suit int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	result, err := gs.round.Announce(seat, card.Suit(suit))
	if err != nil {
		return err
	}

	player := gs.players[seat]
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgAnnouncementMade, protocol.AnnouncementMadePayload{
		PlayerID:   playerID,
		PlayerName: player.Name,
		Suit:       int(result.Suit),
		Points:     result.Points,
		Trump:      result.Trump,
	}))

	// 报叫分可能直接打满 66
	if result.Round != nil {
		gs.stopTimer()
		gs.finishRound(result.Round)
	}

	gs.saveSnapshot()
	return nil
}

// HandleExchangeTrump 处理换将牌
func (gs *GameSession) HandleExchangeTrump(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	result, err := gs.round.ExchangeTrump(seat)
	if err != nil {
		return err
	}

	player := gs.players[seat]
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrumpExchanged, protocol.TrumpExchangedPayload{
		PlayerID:     playerID,
		PlayerName:   player.Name,
		NewTrumpCard: convert.CardToInfo(result.NewTrumpCard),
	}))

	// 换牌不消耗回合，但手牌变了，私发给本人
	if client, ok := gs.room.GetClient(playerID); ok {
		received := convert.CardToInfo(result.ReceivedCard)
		client.SendMessage(codec.MustNewMessage(protocol.MsgHandUpdate, protocol.HandUpdatePayload{
			Hand:      convert.CardsToInfos(gs.round.Hand(seat)),
			DealtCard: &received,
			TrumpCard: cardPtrInfo(gs.round.TrumpCard()),
		}))
	}

	gs.saveSnapshot()
	return nil
}

// HandleCloseTalon 处理扣牌
func (gs *GameSession) HandleCloseTalon(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	if err := gs.round.CloseTalon(seat); err != nil {
		return err
	}

	player := gs.players[seat]
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTalonClosed, protocol.TalonClosedPayload{
		PlayerID:   playerID,
		PlayerName: player.Name,
		TalonSize:  gs.round.TalonSize(),
	}))

	gs.saveSnapshot()
	return nil
}

// HandleNextRound 一局结束后双方确认继续
func (gs *GameSession) HandleNextRound(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.round.CurrentPhase() != engine.PhaseRoundOver {
		return apperrors.ErrGameNotStart
	}

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	gs.nextRoundReady[seat] = true
	if !gs.nextRoundReady[0] || !gs.nextRoundReady[1] {
		return nil
	}

	gs.nextRoundReady = [2]bool{}
	gs.round.ResetRound()
	gs.broadcastGameStart()
	gs.saveSnapshot()
	gs.startTurnTimer()
	return nil
}

// HandleRematch 比赛结束后双方确认重赛
func (gs *GameSession) HandleRematch(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.round.CurrentPhase() != engine.PhaseMatchOver {
		return apperrors.ErrGameNotStart
	}

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return apperrors.ErrNotInRoom
	}

	gs.rematchReady[seat] = true
	if !gs.rematchReady[0] || !gs.rematchReady[1] {
		return nil
	}

	gs.rematchReady = [2]bool{}
	gs.round.ResetMatch()
	gs.room.SetState(RoomStatePlaying)
	gs.broadcastGameStart()
	gs.saveSnapshot()
	gs.startTurnTimer()
	return nil
}

// saveSnapshot 把对局快照异步写进房间的 Redis 记录，仅用于运维观测
func (gs *GameSession) saveSnapshot() {
	if gs.deps.RedisStore == nil {
		return
	}

	snap := &storage.GameSessionData{
		Phase:       int(gs.round.CurrentPhase()),
		DealerSeat:  gs.round.DealerSeat(),
		TurnSeat:    gs.round.TurnSeat(),
		TrumpSuit:   int(gs.round.TrumpSuit()),
		TalonSize:   gs.round.TalonSize(),
		TalonClosed: gs.round.TalonClosed(),
	}
	for seat := 0; seat < 2; seat++ {
		snap.Points[seat] = gs.round.Points(seat)
		snap.BummerlPoints[seat] = gs.round.Bummerl(seat)
	}

	data := gs.room.ToRoomData()
	data.GameData = snap
	go func() { _ = gs.deps.RedisStore.SaveRoom(context.Background(), data.Code, data) }()
}
