package session

import (
	"context"
	"log"

	"github.com/palemoky/schnapsen/internal/game/engine"
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/protocol/convert"
)

// finishRound 广播一局结束并记录战绩。调用方持有 gs.mu
func (gs *GameSession) finishRound(result *engine.RoundResult) {
	winner := gs.players[result.Winner]
	loser := gs.players[result.Loser]

	lastTrick := make([]protocol.CardInfo, 0, len(result.TrickCards))
	for _, play := range result.TrickCards {
		lastTrick = append(lastTrick, convert.CardToInfo(play.Card))
	}

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgRoundOver, protocol.RoundOverPayload{
		WinnerID:        winner.ID,
		WinnerName:      winner.Name,
		VictoryPoints:   result.VictoryPoints,
		WinnerPoints:    result.WinnerPoints,
		LoserPoints:     result.LoserPoints,
		WinnerBummerl:   result.WinnerBummerl,
		LoserBummerl:    result.LoserBummerl,
		LastTrick:       lastTrick,
		MatchOver:       result.MatchOver,
		WinnerMatchWins: result.WinnerMatchWins,
	}))

	log.Printf("🃏 房间 %s 一局结束，%s 以 %d:%d 赢得 %d 分",
		gs.room.Code, winner.Name, result.WinnerPoints, result.LoserPoints, result.VictoryPoints)

	gs.recordRoundResult(winner, loser, result)

	if result.MatchOver {
		gs.room.SetState(RoomStateEnded)
		log.Printf("🏆 房间 %s 比赛结束，%s 获胜", gs.room.Code, winner.Name)
	}
}

// recordRoundResult 记录战绩到排行榜
func (gs *GameSession) recordRoundResult(winner, loser *GamePlayer, result *engine.RoundResult) {
	if gs.deps.Leaderboard == nil {
		return
	}

	go func() {
		ctx := context.Background()
		if err := gs.deps.Leaderboard.RecordRoundResult(ctx, winner.ID, winner.Name, true, result.VictoryPoints); err != nil {
			log.Printf("记录战绩失败: %v", err)
		}
		if err := gs.deps.Leaderboard.RecordRoundResult(ctx, loser.ID, loser.Name, false, result.VictoryPoints); err != nil {
			log.Printf("记录战绩失败: %v", err)
		}

		if result.MatchOver {
			if err := gs.deps.Leaderboard.RecordMatchResult(ctx, winner.ID, winner.Name, true); err != nil {
				log.Printf("记录比赛结果失败: %v", err)
			}
			if err := gs.deps.Leaderboard.RecordMatchResult(ctx, loser.ID, loser.Name, false); err != nil {
				log.Printf("记录比赛结果失败: %v", err)
			}
		}
	}()
}
