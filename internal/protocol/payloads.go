package protocol

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Card CardInfo `json:"card"`
}

// AnnouncePayload 报叫请求
type AnnouncePayload struct {
	Suit int `json:"suit"` // 同花色 K+Q 的花色
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	RoomCode   string        `json:"room_code,omitempty"`  // 如果在房间中
	GameState  *GameStateDTO `json:"game_state,omitempty"` // 如果在游戏中
}

// GameStateDTO 游戏状态数据传输对象（用于重连恢复）
type GameStateDTO struct {
	Phase         string             `json:"phase"`                    // playing/round_over/match_over
	Players       []PlayerInfo       `json:"players"`                  // 所有玩家信息
	Hand          []CardInfo         `json:"hand"`                     // 自己的手牌
	TrumpSuit     int                `json:"trump_suit"`               // 将牌花色
	TrumpCard     *CardInfo          `json:"trump_card,omitempty"`     // 翻开的将牌，摸走后为空
	TalonSize     int                `json:"talon_size"`               // 牌堆剩余（含翻开的将牌）
	TalonClosed   bool               `json:"talon_closed"`             // 牌堆是否被扣
	CurrentTurn   string             `json:"current_turn"`             // 当前回合玩家 ID
	CurrentTrick  []CardInfo         `json:"current_trick"`            // 本墩已出的牌
	PendingPoints int                `json:"pending_points,omitempty"` // 自己暂存的报叫分
	Announcements []AnnouncementInfo `json:"announcements,omitempty"`  // 本局报叫记录
	FirstTricks   [][]CardInfo       `json:"first_tricks,omitempty"`   // 按座位的首墩，用于亮牌展示
}

// AnnouncementInfo 报叫记录
type AnnouncementInfo struct {
	PlayerID string `json:"player_id"`
	Suit     int    `json:"suit"`
	Points   int    `json:"points"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// OnlineCountPayload 在线人数更新
type OnlineCountPayload struct {
	Count int `json:"count"` // 当前在线人数
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// GameStartPayload 一局开始通知，手牌是收件人自己的
type GameStartPayload struct {
	Players     []PlayerInfo `json:"players"` // 按座位顺序排列
	Hand        []CardInfo   `json:"hand"`
	TrumpCard   CardInfo     `json:"trump_card"`
	TrumpSuit   int          `json:"trump_suit"`
	TalonSize   int          `json:"talon_size"`
	DealerID    string       `json:"dealer_id"`
	CurrentTurn string       `json:"current_turn"` // 非发牌方先手
}

// MoveMadePayload 首攻出牌通知
type MoveMadePayload struct {
	PlayerID     string   `json:"player_id"`
	Card         CardInfo `json:"card"`
	NextPlayerID string   `json:"next_player_id"`
}

// TrickCompletedPayload 一墩结算通知
type TrickCompletedPayload struct {
	WinnerID     string     `json:"winner_id"`
	WinnerName   string     `json:"winner_name"`
	Cards        []CardInfo `json:"cards"` // 首攻、跟牌顺序
	Points       int        `json:"points"`
	WinnerTotal  int        `json:"winner_total"`
	TalonSize    int        `json:"talon_size"`
	TalonClosed  bool       `json:"talon_closed"`
	NextPlayerID string     `json:"next_player_id"`        // 墩胜者先手
	FirstTrick   []CardInfo `json:"first_trick,omitempty"` // 墩胜者的首墩，供亮牌展示
}

// HandUpdatePayload 补牌后的私有手牌，只发给收件人自己
type HandUpdatePayload struct {
	Hand      []CardInfo `json:"hand"`
	DealtCard *CardInfo  `json:"dealt_card,omitempty"` // 刚摸到的牌
	TrumpCard *CardInfo  `json:"trump_card,omitempty"` // 翻开的将牌，被摸走后为空
}

// AnnouncementMadePayload 报叫通知
type AnnouncementMadePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Suit       int    `json:"suit"`
	Points     int    `json:"points"` // 20 或 40
	Trump      bool   `json:"trump"`  // 是否将牌花色
}

// TrumpExchangedPayload 将牌被换通知
type TrumpExchangedPayload struct {
	PlayerID     string   `json:"player_id"`
	PlayerName   string   `json:"player_name"`
	NewTrumpCard CardInfo `json:"new_trump_card"` // 换上去的将牌 J
}

// TalonClosedPayload 牌堆被扣通知
type TalonClosedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TalonSize  int    `json:"talon_size"`
}

// RoundOverPayload 一局结束通知
type RoundOverPayload struct {
	WinnerID        string     `json:"winner_id"`
	WinnerName      string     `json:"winner_name"`
	VictoryPoints   int        `json:"victory_points"` // 本局赢得的 Bummerl 分（1/2/3）
	WinnerPoints    int        `json:"winner_points"`
	LoserPoints     int        `json:"loser_points"`
	WinnerBummerl   int        `json:"winner_bummerl"`
	LoserBummerl    int        `json:"loser_bummerl"`
	LastTrick       []CardInfo `json:"last_trick,omitempty"` // 终局那一墩
	MatchOver       bool       `json:"match_over"`           // Bummerl 打满 7
	WinnerMatchWins int        `json:"winner_match_wins"`
}

// MaintenancePayload 维护模式通知
type MaintenancePayload struct {
	Maintenance bool `json:"maintenance"` // 是否在维护模式
}

// MaintenanceStatusPayload 维护状态响应
type MaintenanceStatusPayload struct {
	Maintenance bool `json:"maintenance"` // 是否在维护模式
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	TotalRounds   int     `json:"total_rounds"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	SchneiderWins int     `json:"schneider_wins"` // 3 分局胜场
	Score         int     `json:"score"`
	Rank          int     `json:"rank"`
	CurrentStreak int     `json:"current_streak"`
	MaxWinStreak  int     `json:"max_win_streak"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string             `json:"type"` // total/daily/weekly
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// ChatPayload 聊天消息
type ChatPayload struct {
	SenderID   string `json:"sender_id,omitempty"`   // 发送者 ID (服务端填充)
	SenderName string `json:"sender_name,omitempty"` // 发送者名字 (服务端填充)
	Content    string `json:"content"`               // 消息内容
	Scope      string `json:"scope"`                 // "lobby" or "room"
	Time       int64  `json:"time,omitempty"`        // 发送时间 (服务端填充)
	IsSystem   bool   `json:"is_system,omitempty"`   // 是否是系统消息
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Seat          int    `json:"seat"`  // 座位号 0-1
	Ready         bool   `json:"ready"` // 是否准备
	CardsCount    int    `json:"cards_count"`
	Points        int    `json:"points"`         // 本局已入账得分
	TrickCount    int    `json:"trick_count"`    // 本局赢下的墩数
	BummerlPoints int    `json:"bummerl_points"` // 比赛累计 Bummerl 分
	MatchWins     int    `json:"match_wins"`     // 赢下的比赛场数
	Online        bool   `json:"online"`         // 是否在线
}

// CardInfo 牌信息
type CardInfo struct {
	Suit int `json:"suit"` // 花色: 0=红心, 1=方块, 2=黑桃, 3=梅花
	Rank int `json:"rank"` // 点数: 0=J, 1=Q, 2=K, 3=10, 4=A
}
