package session

import (
	"github.com/palemoky/schnapsen/internal/game/engine"
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/convert"
)

// BuildGameStateDTO 构建游戏状态 DTO（用于重连等场景）
func (gs *GameSession) BuildGameStateDTO(playerID string, online OnlineChecker) *protocol.GameStateDTO {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seat := gs.seatOf(playerID)

	players := make([]protocol.PlayerInfo, len(gs.players))
	for i, p := range gs.players {
		players[i] = protocol.PlayerInfo{
			ID:            p.ID,
			Name:          p.Name,
			Seat:          p.Seat,
			Ready:         true,
			CardsCount:    len(gs.round.Hand(p.Seat)),
			Points:        gs.round.Points(p.Seat),
			TrickCount:    gs.round.TrickCount(p.Seat),
			BummerlPoints: gs.round.Bummerl(p.Seat),
			MatchWins:     gs.round.MatchWins(p.Seat),
			Online:        online.IsOnline(p.ID),
		}
	}

	phase := "waiting"
	switch gs.round.CurrentPhase() {
	case engine.PhasePlaying:
		phase = "playing"
	case engine.PhaseRoundOver:
		phase = "round_over"
	case engine.PhaseMatchOver:
		phase = "match_over"
	}

	currentTurnID := ""
	if gs.round.CurrentPhase() == engine.PhasePlaying {
		currentTurnID = gs.players[gs.round.TurnSeat()].ID
	}

	trick := gs.round.CurrentTrick()
	trickCards := make([]protocol.CardInfo, 0, len(trick))
	for _, play := range trick {
		trickCards = append(trickCards, convert.CardToInfo(play.Card))
	}

	announcements := gs.round.Announcements()
	annInfos := make([]protocol.AnnouncementInfo, 0, len(announcements))
	for _, a := range announcements {
		annInfos = append(annInfos, protocol.AnnouncementInfo{
			PlayerID: gs.players[a.Seat].ID,
			Suit:     int(a.Suit),
			Points:   a.Points,
		})
	}

	firstTricks := make([][]protocol.CardInfo, len(gs.players))
	for i := range gs.players {
		if ft := gs.round.FirstTrick(i); ft != nil {
			for _, play := range ft {
				firstTricks[i] = append(firstTricks[i], convert.CardToInfo(play.Card))
			}
		}
	}

	dto := &protocol.GameStateDTO{
		Phase:         phase,
		Players:       players,
		TrumpSuit:     int(gs.round.TrumpSuit()),
		TrumpCard:     cardPtrInfo(gs.round.TrumpCard()),
		TalonSize:     gs.round.TalonSize(),
		TalonClosed:   gs.round.TalonClosed(),
		CurrentTurn:   currentTurnID,
		CurrentTrick:  trickCards,
		Announcements: annInfos,
		FirstTricks:   firstTricks,
	}

	if seat != -1 {
		dto.Hand = convert.CardsToInfos(gs.round.Hand(seat))
		dto.PendingPoints = gs.round.PendingPoints(seat)
	}

	return dto
}

// SerializeForRedis 为Redis序列化准备数据（提供只读访问）
func (gs *GameSession) SerializeForRedis(serialize func()) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	serialize()
}
