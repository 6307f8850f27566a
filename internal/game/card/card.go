package card

import (
	"math/rand/v2"
)

// Suit 定义花色
type Suit string

const (
	Hearts   Suit = "hearts"   // 红心
	Diamonds Suit = "diamonds" // 方块
	Clubs    Suit = "clubs"    // 梅花
	Spades   Suit = "spades"   // 黑桃
)

// Value 定义牌面值
type Value string

const (
	ValueA  Value = "A"
	Value2  Value = "2"
	Value3  Value = "3"
	Value4  Value = "4"
	Value5  Value = "5"
	Value6  Value = "6"
	Value7  Value = "7"
	Value8  Value = "8"
	Value9  Value = "9"
	Value10 Value = "10"
	ValueJ  Value = "J"
	ValueQ  Value = "Q"
	ValueK  Value = "K"
)

// Suits 所有花色（固定顺序，用于生成整副牌）
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Values 所有牌面值
var Values = []Value{
	ValueA, Value2, Value3, Value4, Value5, Value6, Value7,
	Value8, Value9, Value10, ValueJ, ValueQ, ValueK,
}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// Card 定义一张牌，发出后不可变
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	return c.Suit.String() + string(c.Value)
}

// Deck 定义一副牌，从末尾抽牌
type Deck []Card

// NewDeck 生成一副 52 张的新牌（未洗牌）
func NewDeck() Deck {
	deck := make(Deck, 0, 52)
	for _, s := range Suits {
		for _, v := range Values {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

// Shuffle 洗牌
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw 从牌堆末尾抽一张牌，牌堆耗尽时返回 false
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	last := len(*d) - 1
	card := (*d)[last]
	*d = (*d)[:last]
	return card, true
}
