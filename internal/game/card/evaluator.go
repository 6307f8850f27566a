package card

import "strconv"

// ScoreLimit 爆牌上限
const ScoreLimit = 21

// Special 定义两张起手牌的特殊牌型
type Special int

const (
	SpecialNone   Special = iota
	SpecialXiDach         // Xì Dách：A + 10点牌
	SpecialXiBang         // Xì Bàng：双A，最大牌型
)

// valueOf 返回非 A 牌的点数
func valueOf(v Value) int {
	switch v {
	case ValueJ, ValueQ, ValueK:
		return 10
	default:
		n, _ := strconv.Atoi(string(v))
		return n
	}
}

// BestScore 计算一手牌的最优点数。
// 非 A 牌先求和，再穷举每张 A 取 1 或 11 的全部组合，
// 取不超过 21 的最大值；全部组合都爆牌时取最小值（所有 A 记 1）。
// 空手牌返回 0。
func BestScore(hand []Card) int {
	if len(hand) == 0 {
		return 0
	}

	base := 0
	aces := 0
	for _, c := range hand {
		if c.Value == ValueA {
			aces++
		} else {
			base += valueOf(c.Value)
		}
	}

	// 穷举 2^aces 种组合，不走贪心：语义是"≤21 的最大值"
	best := -1
	for mask := 0; mask < 1<<aces; mask++ {
		total := base
		for i := 0; i < aces; i++ {
			if mask&(1<<i) != 0 {
				total += 11
			} else {
				total += 1
			}
		}
		if total <= ScoreLimit && total > best {
			best = total
		}
	}
	if best < 0 {
		// 全部爆牌，所有 A 记 1
		return base + aces
	}
	return best
}

// Detect 判定两张起手牌的特殊牌型，手牌数不为 2 时返回 SpecialNone
func Detect(hand []Card) Special {
	if len(hand) != 2 {
		return SpecialNone
	}

	if hand[0].Value == ValueA && hand[1].Value == ValueA {
		return SpecialXiBang
	}

	hasAce := false
	hasTen := false
	for _, c := range hand {
		switch c.Value {
		case ValueA:
			hasAce = true
		case Value10, ValueJ, ValueQ, ValueK:
			hasTen = true
		}
	}
	if hasAce && hasTen {
		return SpecialXiDach
	}
	return SpecialNone
}

// IsNguLinh 判定五小（五张牌且不爆牌），压过任何非五小牌型
func IsNguLinh(hand []Card) bool {
	return len(hand) == 5 && BestScore(hand) <= ScoreLimit
}
