package room

import (
	"github.com/palemoky/schnapsen/internal/server/storage"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		Code:        r.Code,
		State:       int(r.State),
		Players:     make([]storage.PlayerData, 0, len(r.Players)),
		PlayerOrder: r.PlayerOrder,
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for id, player := range r.Players {
		pd := storage.PlayerData{
			ID:    id,
			Seat:  player.Seat,
			Ready: player.Ready,
		}
		if player.Client != nil {
			pd.Name = player.Client.GetName()
		}
		data.Players = append(data.Players, pd)
	}

	return data
}
