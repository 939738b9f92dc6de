package session

import (
	"log"
	"time"

	"github.com/palemoky/schnapsen/internal/game/engine"
	"github.com/palemoky/schnapsen/internal/protocol/convert"
)

// 玩家离线等待时间
const offlineWaitTimeout = 30 * time.Second

// --- 超时控制 ---

// startTurnTimer 启动出牌计时。调用方持有 gs.mu
func (gs *GameSession) startTurnTimer() {
	if gs.deps.TurnTimeout <= 0 {
		return
	}

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	gs.timerStartTime = time.Now()
	gs.remainingTime = gs.deps.TurnTimeout
	gs.turnTimer = time.AfterFunc(gs.deps.TurnTimeout, func() {
		gs.handleTurnTimeout()
	})
}

// handleTurnTimeout 超时自动替当前玩家出一张合法的牌
func (gs *GameSession) handleTurnTimeout() {
	gs.mu.RLock()
	if gs.round.CurrentPhase() != engine.PhasePlaying {
		gs.mu.RUnlock()
		return
	}
	seat := gs.round.TurnSeat()
	playerID := gs.players[seat].ID
	hand := gs.round.Hand(seat)
	gs.mu.RUnlock()

	log.Printf("⏰ 玩家 %s 出牌超时，自动出牌", playerID)

	// 闭堆阶段有跟牌限制，挨个试到引擎接受为止
	for _, c := range hand {
		if err := gs.HandlePlayCard(playerID, convert.CardToInfo(c)); err == nil {
			return
		}
	}
}

// stopTimer 停止所有计时器
func (gs *GameSession) stopTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}
}

// --- 离线处理 ---

// PlayerOffline 玩家离线，若正轮到其行动则暂停计时等待重连
func (gs *GameSession) PlayerOffline(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return
	}
	gs.players[seat].IsOffline = true

	if gs.round.CurrentPhase() != engine.PhasePlaying || gs.round.TurnSeat() != seat {
		return // 不是当前回合，无需暂停
	}

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	// 暂停计时器，计算剩余时间
	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.remainingTime = time.Until(gs.timerStartTime.Add(gs.remainingTime))
		if gs.remainingTime < 0 {
			gs.remainingTime = 0
		}
		gs.turnTimer = nil
	}

	// 启动离线等待计时器
	gs.offlineWaitTimer = time.AfterFunc(offlineWaitTimeout, func() {
		gs.handleTurnTimeout()
	})

	log.Printf("⏸️ 玩家 %s 离线，暂停计时等待重连 (%v)", gs.players[seat].Name, offlineWaitTimeout)
}

// PlayerOnline 玩家重连，恢复被暂停的计时
func (gs *GameSession) PlayerOnline(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat == -1 {
		return
	}
	gs.players[seat].IsOffline = false

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	// 取消离线等待计时器
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}

	if gs.round.CurrentPhase() != engine.PhasePlaying || gs.round.TurnSeat() != seat {
		return
	}

	// 恢复计时器
	if gs.remainingTime > 0 {
		gs.timerStartTime = time.Now()
		gs.turnTimer = time.AfterFunc(gs.remainingTime, func() {
			gs.handleTurnTimeout()
		})
		log.Printf("▶️ 玩家 %s 重连，恢复计时 (剩余 %v)", gs.players[seat].Name, gs.remainingTime)
	}
}
