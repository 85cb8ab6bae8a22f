package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/deck"
)

func TestPlayerChips(t *testing.T) {
	p := NewPlayer(7, 100)
	assert.Equal(t, "Player 7", p.String())

	assert.Equal(t, 30, p.Commit(30))
	assert.Equal(t, 70, p.Stack)
	assert.Equal(t, 30, p.Action)

	// Over-committing goes all-in
	assert.Equal(t, 70, p.Commit(500))
	assert.True(t, p.AllIn())
	assert.Equal(t, 100, p.Chips())

	assert.Equal(t, 40, p.Release(40))
	assert.Equal(t, 60, p.ReleaseAll())
	assert.Equal(t, 0, p.Release(10))

	p.Collect(25)
	assert.Equal(t, 25, p.Stack)
	assert.False(t, p.AllIn())
}

func TestPlayerHoleCards(t *testing.T) {
	p := NewPlayer(1, 10)
	cards := deck.MustParseCards("AsKd")
	p.TakeHoleCard(cards[0])
	p.TakeHoleCard(cards[1])
	assert.Equal(t, cards, p.Hole)
	assert.Equal(t, cards, p.ClearHoleCards())
	assert.Empty(t, p.Hole)
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input  string
		move   Move
		amount int
		err    bool
	}{
		{"check", Check, 0, false},
		{"  CALL ", Call, 0, false},
		{"fold", Fold, 0, false},
		{"bet 40", Bet, 40, false},
		{"Raise 120", Raise, 120, false},
		{"raise", 0, 0, true},
		{"bet -5", 0, 0, true},
		{"bet lots", 0, 0, true},
		{"check 10", 0, 0, true},
		{"shove", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			move, amount, err := ParseMove(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.move, move)
			assert.Equal(t, tt.amount, amount)
		})
	}
}

func TestBlindSchedules(t *testing.T) {
	assert.Equal(t, 30, Additive(20, 10))
	assert.Equal(t, 40, Doubling(20, 10))

	s, err := ScheduleFor("doubling")
	require.NoError(t, err)
	assert.Equal(t, 8, s(4, 1))

	_, err = ScheduleFor("fibonacci")
	assert.Error(t, err)
}
