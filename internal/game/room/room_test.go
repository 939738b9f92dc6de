package room

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/schnapsen/internal/apperrors"
	"github.com/palemoky/schnapsen/internal/server/storage"
	"github.com/palemoky/schnapsen/internal/testutil"
)

// newTestRoomManager builds a RoomManager backed by an in-memory Redis.
func newTestRoomManager(t *testing.T, timeout time.Duration) *RoomManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRoomManager(storage.NewRedisStore(client), timeout)
}

func TestRoomManager_GetRoomList(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager(t, 10*time.Minute)

	// Manually add a suitable room
	room := &Room{
		Code:        "ABCDE",
		State:       RoomStateWaiting,
		Players:     make(map[string]*RoomPlayer),
		PlayerOrder: []string{},
		CreatedAt:   time.Now(),
	}
	// Add a dummy player
	room.Players["p1"] = &RoomPlayer{
		Client: testutil.NewSimpleClient("p1", "Player1"),
		Seat:   0,
	}

	rm.rooms["ABCDE"] = room

	// Execute
	rooms := rm.GetRoomList()

	// Verify
	assert.Len(t, rooms, 1)
	roomItem := rooms[0]
	assert.Equal(t, "ABCDE", roomItem.RoomCode)
	assert.Equal(t, 1, roomItem.PlayerCount)
	assert.Equal(t, 2, roomItem.MaxPlayers)
}

func TestRoomManager_JoinRoom_Full(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager(t, 10*time.Minute)
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")
	client3 := testutil.NewSimpleClient("p3", "Player3")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	// Third player cannot join a two-seat room
	_, err = rm.JoinRoom(client3, room.Code)
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
}

func TestRoomManager_JoinRoom_NotFound(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager(t, 10*time.Minute)
	client := testutil.NewSimpleClient("p1", "Player1")

	_, err := rm.JoinRoom(client, "ZZZZZ")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestRoomManager_SetPlayerReady_AllReady(t *testing.T) {
	t.Parallel()

	rm := newTestRoomManager(t, 10*time.Minute)
	client1 := testutil.NewSimpleClient("p1", "Player1")
	client2 := testutil.NewSimpleClient("p2", "Player2")

	room, err := rm.CreateRoom(client1)
	require.NoError(t, err)
	_, err = rm.JoinRoom(client2, room.Code)
	require.NoError(t, err)

	allReady, err := rm.SetPlayerReady(client1, true)
	require.NoError(t, err)
	assert.False(t, allReady)

	allReady, err = rm.SetPlayerReady(client2, true)
	require.NoError(t, err)
	assert.True(t, allReady)
}

func TestRoom_CheckAllReady(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}

	// Case 1: Not enough players
	room.Players["p1"] = &RoomPlayer{Ready: true}
	assert.False(t, room.checkAllReady())

	// Case 2: Enough players, but not all ready
	room.Players["p2"] = &RoomPlayer{Ready: false}
	assert.False(t, room.checkAllReady())

	// Case 3: All ready
	room.Players["p2"].Ready = true
	assert.True(t, room.checkAllReady())
}

func TestRoom_GetPlayerInfo(t *testing.T) {
	t.Parallel()

	room := &Room{
		Players: make(map[string]*RoomPlayer),
	}
	client := testutil.NewSimpleClient("p1", "TestPlayer")
	room.Players["p1"] = &RoomPlayer{
		Client: client,
		Seat:   1,
		Ready:  true,
	}

	info := room.GetPlayerInfo("p1")

	assert.Equal(t, "p1", info.ID)
	assert.Equal(t, "TestPlayer", info.Name)
	assert.Equal(t, 1, info.Seat)
	assert.True(t, info.Ready)
	assert.True(t, info.Online)
}
