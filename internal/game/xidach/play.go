package xidach

import (
	"github.com/palemoky/xi-dach/internal/game/card"
)

// DrawStatus 补牌后的状态标记，随消息下发给客户端
type DrawStatus string

const (
	DrawBust      DrawStatus = "bust"      // 爆牌
	DrawFiveCards DrawStatus = "fiveCards" // 满五张自动停牌
	DrawMustDraw  DrawStatus = "mustDraw"  // 未到补牌线，必须继续补
	DrawCanDecide DrawStatus = "canDecide" // 可补可停
)

// DrawResult 一次补牌的结果
type DrawResult struct {
	Card      card.Card  `json:"card"`
	Status    DrawStatus `json:"status"`
	HandValue int        `json:"handValue"`
}

// DealInitialCards 发起手牌：按入座顺序给每个闲家发一张、庄家一张，共两轮。
// 发完立即判定特殊牌型，可能直接终局。
// 牌堆中途耗尽返回 ErrDeckExhausted，此时牌堆已被部分消耗，调用方应视为本局作废。
func (g *Game) DealInitialCards() error {
	if g.state != StateWaiting {
		return ErrInvalidState
	}
	if len(g.players) == 0 {
		return ErrNoPlayers
	}

	g.state = StateDealing
	for round := 0; round < 2; round++ {
		for _, name := range g.joinOrder {
			c, ok := g.deck.Draw()
			if !ok {
				return ErrDeckExhausted
			}
			g.players[name].Hand = append(g.players[name].Hand, c)
			if round == 0 {
				g.dealOrder = append(g.dealOrder, name)
			}
		}
		c, ok := g.deck.Draw()
		if !ok {
			return ErrDeckExhausted
		}
		g.dealer.Hand = append(g.dealer.Hand, c)
	}

	dealerSpecial := card.Detect(g.dealer.Hand)

	// 庄家 Xì Bàng 直接终局，通杀
	if dealerSpecial == card.SpecialXiBang {
		g.state = StateFinished
		g.dealer.Status = StatusStood
		for _, p := range g.players {
			p.Status = StatusStood
			p.Result = ResultLose
		}
		return nil
	}

	// 逐个闲家判定起手特殊牌型。
	// 注意庄家 Xì Dách 通吃所有没摸到 Xì Bàng 的闲家，闲家同样是 Xì Dách 也算输，
	// 这是庄家优势规则，不是对称的平局。
	immediate := false
	for _, p := range g.players {
		special := card.Detect(p.Hand)
		if special == card.SpecialXiBang || (special == card.SpecialXiDach && dealerSpecial != card.SpecialXiDach) {
			immediate = true
			p.Status = StatusStood
			p.Result = ResultWin
		} else if dealerSpecial == card.SpecialXiDach && special != card.SpecialXiBang {
			immediate = true
			p.Status = StatusStood
			p.Result = ResultLose
		}
	}

	// 只要出现即时判定，整局就地结算
	if immediate {
		g.state = StateFinished
		g.dealer.Status = StatusStood
		for _, p := range g.players {
			if p.Result == "" {
				p.Status = StatusStood
				if dealerSpecial == card.SpecialXiDach {
					p.Result = ResultLose
				} else {
					p.Result = ResultTie
				}
			}
		}
		return nil
	}

	g.state = StatePlaying
	g.currentTurn = g.dealOrder[0]
	if first, ok := g.players[g.currentTurn]; ok {
		first.Status = StatusPlaying
	}
	return nil
}

// DrawCard 补一张牌。只有轮到自己（status=playing）且手牌未满五张时合法。
func (g *Game) DrawCard(name string) (*DrawResult, error) {
	p, isDealer := g.participant(name)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	if p.Status != StatusPlaying || len(p.Hand) >= MaxHandSize {
		return nil, ErrInvalidStatus
	}

	c, ok := g.deck.Draw()
	if !ok {
		return nil, ErrDeckExhausted
	}
	p.Hand = append(p.Hand, c)
	value := card.BestScore(p.Hand)

	if value > card.ScoreLimit {
		p.Status = StatusBust
		// 庄家爆牌不能再补，直接视为停牌并尝试结算；
		// 闲家爆牌后保留 bust 状态，等待其主动停牌
		if isDealer {
			p.Status = StatusStood
			g.CheckGameEnd()
		}
		return &DrawResult{Card: c, Status: DrawBust, HandValue: value}, nil
	}

	if len(p.Hand) == MaxHandSize {
		p.Status = StatusStood
		g.nextTurn()
		return &DrawResult{Card: c, Status: DrawFiveCards, HandValue: value}, nil
	}

	if value < g.drawFloor(isDealer) {
		return &DrawResult{Card: c, Status: DrawMustDraw, HandValue: value}, nil
	}
	return &DrawResult{Card: c, Status: DrawCanDecide, HandValue: value}, nil
}

// Stand 停牌。未爆牌时必须达到补牌线，否则返回 ErrNotEnoughPoints。
func (g *Game) Stand(name string) error {
	p, isDealer := g.participant(name)
	if p == nil || (p.Status != StatusPlaying && p.Status != StatusBust) {
		return ErrInvalidStatus
	}

	if p.Status != StatusBust && card.BestScore(p.Hand) < g.drawFloor(isDealer) {
		return ErrNotEnoughPoints
	}

	// 爆牌状态保留 bust，否则置为停牌
	if p.Status != StatusBust {
		p.Status = StatusStood
	}
	g.nextTurn()
	return nil
}

func (g *Game) drawFloor(isDealer bool) int {
	if isDealer {
		return dealerDrawFloor
	}
	return playerDrawFloor
}

// nextTurn 按发牌顺序推进回合，闲家都行动完后轮到庄家
func (g *Game) nextTurn() {
	if g.state != StatePlaying {
		return
	}

	idx := -1
	for i, name := range g.dealOrder {
		if name == g.currentTurn {
			idx = i
			break
		}
	}

	for next := idx + 1; next < len(g.dealOrder); next++ {
		p, ok := g.players[g.dealOrder[next]]
		if !ok {
			continue // 中途离座
		}
		if p.Status == StatusWaiting {
			g.currentTurn = g.dealOrder[next]
			p.Status = StatusPlaying
			return
		}
	}

	switch g.dealer.Status {
	case StatusWaiting:
		g.currentTurn = g.dealer.ID
		g.dealer.Status = StatusPlaying
	case StatusStood, StatusBust:
		g.CheckGameEnd()
	}
}

// CheckGameEnd 全员（含庄家）停牌或爆牌后终局，给未结算的闲家比牌定结果
func (g *Game) CheckGameEnd() bool {
	for _, p := range g.players {
		if p.Status != StatusStood && p.Status != StatusBust {
			return false
		}
	}
	if g.dealer.Status != StatusStood && g.dealer.Status != StatusBust {
		return false
	}

	g.state = StateFinished
	for _, p := range g.players {
		if p.Result == "" {
			p.Result = g.resolve(p).toResult()
		}
	}
	return true
}

// CompareHands 庄家开牌：对已停牌/爆牌的闲家亮牌比大小，结果立即落子无悔。
// 庄家必须达到 16 点开牌线（区别于 15 点补牌线）。
func (g *Game) CompareHands(dealerName, playerName string) (Outcome, error) {
	if dealerName != g.dealer.ID {
		return "", ErrNotDealer
	}
	if g.state != StatePlaying {
		return "", ErrInvalidState
	}

	p, ok := g.players[playerName]
	if !ok || (p.Status != StatusStood && p.Status != StatusBust) {
		return "", ErrPlayerNotFinished
	}

	if card.BestScore(g.dealer.Hand) < compareFloor {
		return "", ErrDealerHandTooLow
	}

	// 开牌后对全桌公开，本局内不可撤销
	g.revealed[playerName] = true

	outcome := g.resolve(p)
	if p.Result == "" {
		p.Result = outcome.toResult()
	}

	// 所有闲家都有结果后终局
	allResolved := true
	for _, other := range g.players {
		if other.Result == "" {
			allResolved = false
			break
		}
	}
	if allResolved {
		g.state = StateFinished
		g.dealer.Status = StatusStood
	}

	return outcome, nil
}

// Restart 重开一局：换新牌堆，清空各家手牌与结算，回到 waiting
func (g *Game) Restart() {
	g.deck = freshDeck()
	g.state = StateWaiting
	g.currentTurn = ""
	g.dealOrder = nil
	g.revealed = make(map[string]bool)

	g.dealer.Hand = []card.Card{}
	g.dealer.Status = StatusWaiting
	g.dealer.Result = ""

	for _, p := range g.players {
		p.Hand = []card.Card{}
		p.Status = StatusWaiting
		p.Result = ""
	}
}
