package xidach

import (
	"slices"

	"github.com/palemoky/xi-dach/internal/game/card"
)

// State 定义对局状态
type State string

const (
	StateWaiting  State = "waiting"
	StateDealing  State = "dealing"
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// Status 定义参与者状态
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusStood   Status = "stood"
	StatusBust    Status = "bust" // 爆牌
)

// Result 定义闲家相对庄家的结算结果
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultTie  Result = "tie"
)

const (
	// MaxPlayers 每桌最多 7 个闲家（加 1 个庄家）
	MaxPlayers = 7
	// MaxHandSize 单手牌上限
	MaxHandSize = 5

	// 庄家 15 点前必须补牌，闲家 16 点
	dealerDrawFloor = 15
	playerDrawFloor = 16
	// 庄家开牌线（与补牌线不同）
	compareFloor = 16
)

// Participant 对局参与者，庄闲同构，身份由 Game 指定
type Participant struct {
	ID     string
	Name   string
	Hand   []card.Card
	Status Status
	Result Result // 空值表示本局尚未结算
}

// Game 一桌对局，持有牌堆、庄家、闲家与回合顺序。
// 非并发安全，由上层房间串行调用。
type Game struct {
	roomID      string
	dealer      *Participant
	players     map[string]*Participant
	joinOrder   []string // 入座顺序，决定发牌顺序
	deck        card.Deck
	state       State
	currentTurn string
	dealOrder   []string
	revealed    map[string]bool
}

// NewGame 开一桌新对局，建桌者即庄家
func NewGame(roomID, dealerName string) *Game {
	g := &Game{
		roomID: roomID,
		dealer: &Participant{
			ID:     dealerName,
			Name:   dealerName,
			Hand:   []card.Card{},
			Status: StatusWaiting,
		},
		players:  make(map[string]*Participant),
		revealed: make(map[string]bool),
		state:    StateWaiting,
	}
	g.deck = freshDeck()
	return g
}

func freshDeck() card.Deck {
	deck := card.NewDeck()
	deck.Shuffle()
	return deck
}

// AddPlayer 闲家入座，满员返回 ErrRoomFull
func (g *Game) AddPlayer(name string) error {
	if len(g.players) >= MaxPlayers {
		return ErrRoomFull
	}
	if _, exists := g.players[name]; exists {
		return nil // 重复入座幂等
	}
	g.players[name] = &Participant{
		ID:     name,
		Name:   name,
		Hand:   []card.Card{},
		Status: StatusWaiting,
	}
	g.joinOrder = append(g.joinOrder, name)
	return nil
}

// RemovePlayer 闲家离座
func (g *Game) RemovePlayer(name string) {
	delete(g.players, name)
	g.joinOrder = slices.DeleteFunc(g.joinOrder, func(n string) bool { return n == name })
	delete(g.revealed, name)
}

// participant 统一按名字定位庄家或闲家，避免身份判断散落各处
func (g *Game) participant(name string) (p *Participant, isDealer bool) {
	if name == g.dealer.ID {
		return g.dealer, true
	}
	return g.players[name], false
}

// RoomID 返回房间号
func (g *Game) RoomID() string { return g.roomID }

// State 返回对局状态
func (g *Game) State() State { return g.state }

// CurrentTurn 返回当前行动者，仅 playing 状态下非空
func (g *Game) CurrentTurn() string { return g.currentTurn }

// DealerName 返回庄家名字
func (g *Game) DealerName() string { return g.dealer.ID }

// IsDealer 判断是否为庄家
func (g *Game) IsDealer(name string) bool { return name == g.dealer.ID }

// HasPlayer 判断闲家是否在座
func (g *Game) HasPlayer(name string) bool {
	_, ok := g.players[name]
	return ok
}

// PlayerCount 返回闲家数量
func (g *Game) PlayerCount() int { return len(g.players) }
