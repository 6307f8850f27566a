package xidach

import (
	"github.com/palemoky/xi-dach/internal/game/card"
)

// ParticipantView 参与者的对外投影。手牌本身总是带上（遮牌是渲染层的事），
// 点数只对有权看到的观察者计算，其余为 null。
type ParticipantView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Hand      []card.Card `json:"hand"`
	Status    Status      `json:"status"`
	HandValue *int        `json:"handValue"`
	Result    Result      `json:"result,omitempty"`
}

// GameState 按观察者投影的对局状态，广播前为每个接收者单独生成
type GameState struct {
	RoomID          string                     `json:"roomId"`
	State           State                      `json:"state"`
	CurrentTurn     string                     `json:"currentTurn,omitempty"`
	Dealer          ParticipantView            `json:"dealer"`
	Players         map[string]ParticipantView `json:"players"`
	ShowAllCards    bool                       `json:"showAllCards"`
	RevealedPlayers map[string]bool            `json:"revealedPlayers"`
}

// Snapshot 生成 viewer 视角的对局投影，纯读取不产生任何副作用。
// 庄家点数在终局、庄家本人、已有人被开牌、或庄家已摸牌进行中时可见；
// 闲家点数在终局、本人、或已被开牌时可见。
func (g *Game) Snapshot(viewer string) *GameState {
	var dealerValue *int
	if g.state == StateFinished ||
		g.dealer.ID == viewer ||
		len(g.revealed) > 0 ||
		(g.state == StatePlaying && len(g.dealer.Hand) > 0) {
		v := card.BestScore(g.dealer.Hand)
		dealerValue = &v
	}

	players := make(map[string]ParticipantView, len(g.players))
	for name, p := range g.players {
		var value *int
		if g.state == StateFinished || name == viewer || g.revealed[name] {
			v := card.BestScore(p.Hand)
			value = &v
		}
		players[name] = ParticipantView{
			ID:        p.ID,
			Name:      p.Name,
			Hand:      append([]card.Card{}, p.Hand...),
			Status:    p.Status,
			HandValue: value,
			Result:    p.Result,
		}
	}

	revealed := make(map[string]bool, len(g.revealed))
	for name := range g.revealed {
		revealed[name] = true
	}

	return &GameState{
		RoomID:      g.roomID,
		State:       g.state,
		CurrentTurn: g.currentTurn,
		Dealer: ParticipantView{
			ID:        g.dealer.ID,
			Name:      g.dealer.Name,
			Hand:      append([]card.Card{}, g.dealer.Hand...),
			Status:    g.dealer.Status,
			HandValue: dealerValue,
		},
		Players:         players,
		ShowAllCards:    g.state == StateFinished,
		RevealedPlayers: revealed,
	}
}
