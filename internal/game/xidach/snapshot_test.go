package xidach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/xi-dach/internal/game/card"
)

func TestSnapshot_HidesOtherHands(t *testing.T) {
	t.Parallel()

	// p1: 17, p2: 16, dealer: 15
	g := newTestGame(t, []string{"p1", "p2"},
		c(card.Value10), c(card.Value10), c(card.Value7),
		c(card.Value7), c(card.Value6), c(card.Value8))
	require.NoError(t, g.DealInitialCards())

	state := g.Snapshot("p1")

	// Cards travel in every snapshot; hiding is the client's job.
	// Values are only computed for hands the viewer may see.
	require.NotNil(t, state.Players["p1"].HandValue)
	assert.Equal(t, 17, *state.Players["p1"].HandValue)
	assert.Nil(t, state.Players["p2"].HandValue)
	assert.Len(t, state.Players["p2"].Hand, 2)
	assert.False(t, state.ShowAllCards)
	assert.Equal(t, "p1", state.CurrentTurn)
}

func TestSnapshot_DealerSeesOwnValue(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, []string{"p1"},
		c(card.Value10), c(card.Value7),
		c(card.Value7), c(card.Value8))
	require.NoError(t, g.DealInitialCards())

	state := g.Snapshot("dealer")
	require.NotNil(t, state.Dealer.HandValue)
	assert.Equal(t, 15, *state.Dealer.HandValue)
	assert.Nil(t, state.Players["p1"].HandValue)
}

func TestSnapshot_RevealedPlayerVisibleToAll(t *testing.T) {
	t.Parallel()

	// p1: 17, p2: 16, dealer: 16
	g := newTestGame(t, []string{"p1", "p2"},
		c(card.Value10), c(card.Value10), c(card.Value10),
		c(card.Value7), c(card.Value6), c(card.Value6))
	require.NoError(t, g.DealInitialCards())
	require.NoError(t, g.Stand("p1"))
	require.NoError(t, g.Stand("p2"))

	_, err := g.CompareHands("dealer", "p1")
	require.NoError(t, err)

	// After the reveal, p2 can see p1's value but not vice versa
	state := g.Snapshot("p2")
	require.NotNil(t, state.Players["p1"].HandValue)
	assert.Equal(t, 17, *state.Players["p1"].HandValue)
	assert.True(t, state.RevealedPlayers["p1"])

	state = g.Snapshot("p1")
	assert.Nil(t, state.Players["p2"].HandValue)
}

func TestSnapshot_FinishedShowsEverything(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, []string{"p1"},
		c(card.Value10), c(card.Value7),
		c(card.Value7), c(card.Value8))
	require.NoError(t, g.DealInitialCards())
	require.NoError(t, g.Stand("p1"))
	require.NoError(t, g.Stand("dealer"))
	require.Equal(t, StateFinished, g.State())

	// Even a spectator name sees all values at the end
	state := g.Snapshot("someone-else")
	assert.True(t, state.ShowAllCards)
	require.NotNil(t, state.Dealer.HandValue)
	assert.Equal(t, 15, *state.Dealer.HandValue)
	require.NotNil(t, state.Players["p1"].HandValue)
	assert.Equal(t, 17, *state.Players["p1"].HandValue)
	assert.Equal(t, ResultWin, state.Players["p1"].Result)
}

func TestSnapshot_IsACopy(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, []string{"p1"},
		c(card.Value10), c(card.Value7),
		c(card.Value7), c(card.Value8))
	require.NoError(t, g.DealInitialCards())

	state := g.Snapshot("p1")
	state.Players["p1"].Hand[0] = card.Card{Suit: card.Hearts, Value: card.Value2}
	state.RevealedPlayers["p1"] = true

	// Mutating the snapshot must not leak back into the game
	assert.Equal(t, card.Value10, g.players["p1"].Hand[0].Value)
	assert.False(t, g.revealed["p1"])
}
