package card

import (
	"fmt"
	"math/rand"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Hearts Suit = iota // 红心
	Diamonds
	Spades
	Clubs
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Spades:   "♠",
	Clubs:    "♣",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Schnapsen 只用五种牌面：A、10、K、Q、J
const (
	RankJ Rank = iota
	RankQ
	RankK
	Rank10
	RankA
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	Rank10: "10",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

// rankValues 固定计分值：A=11, 10=10, K=4, Q=3, J=2，与花色无关
var rankValues = map[Rank]int{
	RankA:  11,
	Rank10: 10,
	RankK:  4,
	RankQ:  3,
	RankJ:  2,
}

// Card 定义一张牌，(Suit, Rank) 即为牌的身份，是不可变值对象
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Value 返回这张牌的计分值
func (c Card) Value() int {
	return rankValues[c.Rank]
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Suit, c.Rank)
}

// Deck 定义一副牌
type Deck []Card

// DeckSize 一副 Schnapsen 牌共 20 张（4 花色 × 5 牌面）
const DeckSize = 20

// NewDeck 生成标准 20 张牌，每个 (花色, 牌面) 组合恰好一张
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for s := Hearts; s <= Clubs; s++ {
		for r := RankJ; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 均匀随机洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// TotalValue 整副牌的计分值合计（固定 120）
func (d Deck) TotalValue() int {
	total := 0
	for _, c := range d {
		total += c.Value()
	}
	return total
}

// Contains 检查切片中是否包含指定的牌
func Contains(cards []Card, target Card) bool {
	for _, c := range cards {
		if c == target {
			return true
		}
	}
	return false
}

// Remove 从切片中移除指定的牌，返回新切片和是否找到
func Remove(cards []Card, target Card) ([]Card, bool) {
	for i, c := range cards {
		if c == target {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
