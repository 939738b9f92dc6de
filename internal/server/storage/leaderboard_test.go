package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboardManager(t *testing.T) (*LeaderboardManager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	lm := NewLeaderboardManager(client)
	return lm, mr
}

func TestLeaderboard_RecordRoundResult_NewPlayer(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// Schneider win (3 victory points) for a new player
	err := lm.RecordRoundResult(ctx, "p1", "Player1", true, 3)
	assert.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "p1", stats.PlayerID)
	assert.Equal(t, 1, stats.TotalRounds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.SchneiderWins)
	assert.Equal(t, 30, stats.Score) // 3 * ScorePerVictoryPoint
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestLeaderboard_RecordRoundResult_Update(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// Initial record: plain 1-point win -> Score 10
	err := lm.RecordRoundResult(ctx, "p1", "Player1", true, 1)
	assert.NoError(t, err)

	// Second record: loss -> Score 10 - 10 = 0
	err = lm.RecordRoundResult(ctx, "p1", "Player1", false, 0)
	assert.NoError(t, err)

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalRounds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 0, stats.Score)
	assert.Equal(t, -1, stats.CurrentStreak)
	assert.Equal(t, 0, stats.SchneiderWins)
}

func TestLeaderboard_StreakBonus(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// Win 3 plain rounds in a row.
	// 1st: 10, streak 1
	// 2nd: 20, streak 2
	// 3rd: 20 + 10 + 5 = 35, streak 3 (StreakBonus3)
	for i := 0; i < 3; i++ {
		err := lm.RecordRoundResult(ctx, "p1", "Player1", true, 1)
		assert.NoError(t, err)
	}

	stats, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, 35, stats.Score)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxWinStreak)
}

func TestLeaderboard_RecordMatchResult(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	err := lm.RecordMatchResult(ctx, "p1", "Player1", true)
	assert.NoError(t, err)
	err = lm.RecordMatchResult(ctx, "p2", "Player2", false)
	assert.NoError(t, err)

	winner, err := lm.GetPlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, winner.MatchesPlayed)
	assert.Equal(t, 1, winner.MatchesWon)
	assert.Equal(t, WinMatchBonus, winner.Score)

	loser, err := lm.GetPlayerStats(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, loser.MatchesPlayed)
	assert.Equal(t, 0, loser.MatchesWon)
	assert.Equal(t, 0, loser.Score)
}

func TestLeaderboard_GetLeaderboard(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	// p1: Score 30, p2: Score 10
	err := lm.RecordRoundResult(ctx, "p1", "Player1", true, 3)
	assert.NoError(t, err)
	err = lm.RecordRoundResult(ctx, "p2", "Player2", true, 1)
	assert.NoError(t, err)

	entries, err := lm.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 30, entries[0].Score)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "p2", entries[1].PlayerID)
}

func TestLeaderboard_GetPlayerRank(t *testing.T) {
	t.Parallel()

	lm, mr := newTestLeaderboardManager(t)
	defer mr.Close()
	ctx := context.Background()

	err := lm.RecordRoundResult(ctx, "p1", "Player1", true, 2)
	assert.NoError(t, err)

	rank, err := lm.GetPlayerRank(ctx, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rank)

	// Unknown player is unranked
	rank, err = lm.GetPlayerRank(ctx, "nobody")
	assert.NoError(t, err)
	assert.Equal(t, int64(-1), rank)
}
