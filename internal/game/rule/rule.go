package rule

import (
	"github.com/palemoky/schnapsen/internal/apperrors"
	"github.com/palemoky/schnapsen/internal/game/card"
)

// 本包只做纯函数式的规则判定，不持有任何对局状态。
// 严格规则（Farbzwang / Stichzwang / Trumpfzwang）只在牌堆扣下或抓完之后、
// 且当前是跟牌（一墩的第二张）时生效，由调用方决定是否调用 ValidateResponse。

// hasSuit 检查手牌中是否有指定花色
func hasSuit(hand []card.Card, suit card.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// hasHigherInSuit 检查手牌中是否有该花色且计分值严格更高的牌
func hasHigherInSuit(hand []card.Card, suit card.Suit, value int) bool {
	for _, c := range hand {
		if c.Suit == suit && c.Value() > value {
			return true
		}
	}
	return false
}

// ValidateResponse 校验严格规则下的跟牌是否合法。
// 判定顺序固定：先跟牌（Farbzwang），同花色内能吃必须吃（Stichzwang）；
// 无法跟牌则必须出将牌（Trumpfzwang）；两者都没有时任意出。
func ValidateResponse(hand []card.Card, lead, played card.Card, trump card.Suit) error {
	if hasSuit(hand, lead.Suit) {
		if played.Suit != lead.Suit {
			return apperrors.ErrFarbzwang
		}
		if hasHigherInSuit(hand, lead.Suit, lead.Value()) && played.Value() <= lead.Value() {
			return apperrors.ErrStichzwang
		}
		return nil
	}

	if hasSuit(hand, trump) && played.Suit != trump {
		return apperrors.ErrTrumpfzwang
	}

	return nil
}

// FollowerWins 判定跟牌方是否赢下此墩。
// 跟牌同花色且更大则赢；跟牌是将牌而首攻不是将牌则赢；其余情况首攻赢
// （包括同花色但更小、以及两边花色都不沾的垫牌）。
func FollowerWins(lead, follow card.Card, trump card.Suit) bool {
	if follow.Suit == lead.Suit {
		return follow.Value() > lead.Value()
	}
	return follow.Suit == trump
}

// TrickValue 一墩的计分值为两张牌之和
func TrickValue(lead, follow card.Card) int {
	return lead.Value() + follow.Value()
}

// MarriageValue 报叫分值：将牌花色 40 分，其余花色 20 分
func MarriageValue(suit, trump card.Suit) int {
	if suit == trump {
		return 40
	}
	return 20
}

// VictoryPoints 计算本局胜者赢得的 Bummerl 分。
// 基础规则：败者 0 分得 3、不足 33 分得 2、否则得 1。
// closerFailed 表示扣牌者没打满 66 而输掉本局：至少提到 2，
// 若胜者一墩未赢（扣牌方反被剃光头）或败者 0 分则强制 3。
func VictoryPoints(loserPoints int, closerFailed bool, winnerTricks int) int {
	points := 1
	if loserPoints == 0 {
		points = 3
	} else if loserPoints < 33 {
		points = 2
	}

	if closerFailed {
		if points < 2 {
			points = 2
		}
		if winnerTricks == 0 || loserPoints == 0 {
			points = 3
		}
	}

	return points
}
