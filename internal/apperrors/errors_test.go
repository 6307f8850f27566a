package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/xi-dach/internal/game/xidach"
	"github.com/palemoky/xi-dach/internal/protocol"
)

func TestGameError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "房间已满", ErrRoomFull.Error())

	// Sentinels survive a trip through error wrapping
	var gameErr *GameError
	wrapped := error(ErrNotYourTurn)
	require.ErrorAs(t, wrapped, &gameErr)
	assert.Equal(t, protocol.ErrCodeNotYourTurn, gameErr.Code)
}

func TestFromGame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"room full", xidach.ErrRoomFull, protocol.ErrCodeRoomFull},
		{"invalid state", xidach.ErrInvalidState, protocol.ErrCodeInvalidAction},
		{"invalid status", xidach.ErrInvalidStatus, protocol.ErrCodeInvalidAction},
		{"no players", xidach.ErrNoPlayers, protocol.ErrCodeInvalidAction},
		{"unknown player", xidach.ErrUnknownPlayer, protocol.ErrCodeInvalidAction},
		{"deck exhausted", xidach.ErrDeckExhausted, protocol.ErrCodeDeckExhausted},
		{"not enough points", xidach.ErrNotEnoughPoints, protocol.ErrCodeNotEnoughPoints},
		{"not dealer", xidach.ErrNotDealer, protocol.ErrCodeNotDealer},
		{"player not finished", xidach.ErrPlayerNotFinished, protocol.ErrCodePlayerNotFinished},
		{"dealer hand too low", xidach.ErrDealerHandTooLow, protocol.ErrCodeDealerHandTooLow},
		{"anything else", errors.New("boom"), protocol.ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gameErr := FromGame(tt.err)
			require.NotNil(t, gameErr)
			assert.Equal(t, tt.code, gameErr.Code)
			assert.Equal(t, protocol.ErrorMessages[tt.code], gameErr.Message)
		})
	}
}
