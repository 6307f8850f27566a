package xidach

import (
	"github.com/palemoky/xi-dach/internal/game/card"
)

// Outcome 庄闲比牌结果（庄家视角）
type Outcome string

const (
	OutcomeDealerWin Outcome = "dealerWin"
	OutcomePlayerWin Outcome = "playerWin"
	OutcomeTie       Outcome = "tie"
)

// toResult 换算成闲家视角的结算结果
func (o Outcome) toResult() Result {
	switch o {
	case OutcomePlayerWin:
		return ResultWin
	case OutcomeDealerWin:
		return ResultLose
	default:
		return ResultTie
	}
}

// resolve 庄闲比牌。优先级：Xì Bàng > Xì Dách > 五小 > 点数。
// 同级特殊牌型互见为平，点数比较时双爆为平、单爆判负。
func (g *Game) resolve(p *Participant) Outcome {
	dealerSpecial := card.Detect(g.dealer.Hand)
	playerSpecial := card.Detect(p.Hand)

	if dealerSpecial == card.SpecialXiBang || playerSpecial == card.SpecialXiBang {
		switch {
		case dealerSpecial == card.SpecialXiBang && playerSpecial != card.SpecialXiBang:
			return OutcomeDealerWin
		case playerSpecial == card.SpecialXiBang && dealerSpecial != card.SpecialXiBang:
			return OutcomePlayerWin
		default:
			return OutcomeTie
		}
	}

	if dealerSpecial == card.SpecialXiDach || playerSpecial == card.SpecialXiDach {
		switch {
		case dealerSpecial == card.SpecialXiDach && playerSpecial != card.SpecialXiDach:
			return OutcomeDealerWin
		case playerSpecial == card.SpecialXiDach && dealerSpecial != card.SpecialXiDach:
			return OutcomePlayerWin
		default:
			return OutcomeTie
		}
	}

	dealerNguLinh := card.IsNguLinh(g.dealer.Hand)
	playerNguLinh := card.IsNguLinh(p.Hand)
	if dealerNguLinh || playerNguLinh {
		switch {
		case dealerNguLinh && !playerNguLinh:
			return OutcomeDealerWin
		case playerNguLinh && !dealerNguLinh:
			return OutcomePlayerWin
		default:
			return OutcomeTie
		}
	}

	dealerValue := card.BestScore(g.dealer.Hand)
	playerValue := card.BestScore(p.Hand)
	switch {
	case dealerValue > card.ScoreLimit && playerValue > card.ScoreLimit:
		return OutcomeTie
	case dealerValue > card.ScoreLimit:
		return OutcomePlayerWin
	case playerValue > card.ScoreLimit:
		return OutcomeDealerWin
	case dealerValue > playerValue:
		return OutcomeDealerWin
	case dealerValue < playerValue:
		return OutcomePlayerWin
	default:
		return OutcomeTie
	}
}
