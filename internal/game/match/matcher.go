package match

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/palemoky/schnapsen/internal/game/room"
	"github.com/palemoky/schnapsen/internal/protocol"
	"github.com/palemoky/schnapsen/internal/protocol/codec"
	"github.com/palemoky/schnapsen/internal/server/storage"
	"github.com/palemoky/schnapsen/internal/types"
)

// 一局需要的玩家数
const matchSize = 2

// MatcherDeps 匹配器依赖
type MatcherDeps struct {
	RoomManager *room.RoomManager
	RedisStore  *storage.RedisStore
	// OnMatched 匹配成功后由上层启动对局
	OnMatched func(r *room.Room)
}

// Matcher 匹配系统
type Matcher struct {
	deps  MatcherDeps
	queue []types.ClientInterface
	mu    sync.Mutex
}

// NewMatcher 创建匹配器
func NewMatcher(deps MatcherDeps) *Matcher {
	return &Matcher{
		deps:  deps,
		queue: make([]types.ClientInterface, 0),
	}
}

// AddToQueue 加入匹配队列
func (m *Matcher) AddToQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 检查是否已在队列中
	for _, c := range m.queue {
		if c.GetID() == client.GetID() {
			return
		}
	}

	m.queue = append(m.queue, client)
	log.Printf("🔍 玩家 %s 加入匹配队列，当前队列长度: %d", client.GetName(), len(m.queue))

	if m.deps.RedisStore != nil {
		go func() { _ = m.deps.RedisStore.AddToMatchQueue(context.Background(), client.GetID()) }()
	}

	// 检查是否可以匹配
	m.tryMatch()
}

// RemoveFromQueue 从匹配队列移除
func (m *Matcher) RemoveFromQueue(client types.ClientInterface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.queue {
		if c.GetID() == client.GetID() {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			log.Printf("🔍 玩家 %s 离开匹配队列", client.GetName())

			if m.deps.RedisStore != nil {
				go func() { _ = m.deps.RedisStore.RemoveFromMatchQueue(context.Background(), client.GetID()) }()
			}
			return
		}
	}
}

// tryMatch 尝试匹配
func (m *Matcher) tryMatch() {
	if len(m.queue) < matchSize {
		return
	}

	// 取出前两个玩家
	players := make([]types.ClientInterface, matchSize)
	copy(players, m.queue[:matchSize])
	m.queue = m.queue[matchSize:]

	if m.deps.RedisStore != nil {
		go func() { _, _ = m.deps.RedisStore.PopFromMatchQueue(context.Background(), matchSize) }()
	}

	// 创建房间
	go m.createMatchRoom(players)
}

// createMatchRoom 创建匹配房间
func (m *Matcher) createMatchRoom(players []types.ClientInterface) {
	// 使用第一个玩家创建房间
	matchRoom, err := m.deps.RoomManager.CreateRoom(players[0])
	if err != nil {
		log.Printf("匹配创建房间失败: %v", err)
		m.requeue(players)
		return
	}

	// 第二个玩家加入房间
	if _, err := m.deps.RoomManager.JoinRoom(players[1], matchRoom.Code); err != nil {
		log.Printf("匹配加入房间失败: %v", err)
		m.deps.RoomManager.LeaveRoom(players[0])
		m.requeue(players)
		return
	}

	log.Printf("🎮 匹配成功！房间 %s，玩家: %s, %s",
		matchRoom.Code, players[0].GetName(), players[1].GetName())

	// 短暂延迟确保房间状态同步
	time.Sleep(100 * time.Millisecond)

	// 给双方发送匹配成功消息和房间信息
	for _, client := range players {
		client.SendMessage(codec.MustNewMessage(protocol.MsgMatchFound, protocol.RoomJoinedPayload{
			RoomCode: matchRoom.Code,
			Player:   matchRoom.GetPlayerInfo(client.GetID()),
			Players:  matchRoom.GetAllPlayersInfo(),
		}))
	}

	// 自动准备所有玩家
	matchRoom.SetAllPlayersReady()
	for _, client := range players {
		matchRoom.Broadcast(codec.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
			PlayerID: client.GetID(),
			Ready:    true,
		}))
	}

	// 开始对局
	if m.deps.OnMatched != nil {
		m.deps.OnMatched(matchRoom)
	}
}

// requeue 将玩家放回队列头部
func (m *Matcher) requeue(players []types.ClientInterface) {
	m.mu.Lock()
	m.queue = append(players, m.queue...)
	m.mu.Unlock()
}

// GetQueueLength 获取队列长度
func (m *Matcher) GetQueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
