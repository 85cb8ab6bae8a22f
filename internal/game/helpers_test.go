package game

import (
	"io"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/randutil"
)

type testEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed   int64
	setup  config.Setup
	stacks []int
	hooks  Hooks
}

func withSeed(seed int64) testEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

func withPlayers(n int) testEngineOption {
	return func(b *testEngineBuilder) { b.setup.Players = n }
}

func withBigBlind(bb int) testEngineOption {
	return func(b *testEngineBuilder) { b.setup.BigBlind = bb }
}

// withStacks seats len(stacks) players with the given stacks, dealer first
func withStacks(stacks ...int) testEngineOption {
	return func(b *testEngineBuilder) {
		b.stacks = stacks
		b.setup.Players = len(stacks)
	}
}

func withHooks(h Hooks) testEngineOption {
	return func(b *testEngineBuilder) { b.hooks = h }
}

// newTestEngine builds an engine where seat i holds player ID i+1 and player 1
// is the dealer.
func newTestEngine(t *testing.T, opts ...testEngineOption) *Engine {
	t.Helper()

	b := &testEngineBuilder{
		seed: 42,
		setup: config.Setup{
			Players:       3,
			StartingStack: 100,
			BigBlind:      10,
			BlindInterval: time.Minute,
			BlindScheme:   config.SchemeAdditive,
		},
	}
	for _, opt := range opts {
		opt(b)
	}

	e, err := NewEngine(b.setup, b.hooks, randutil.New(b.seed), log.New(io.Discard))
	require.NoError(t, err)

	slices.SortFunc(e.players, func(a, b *Player) int { return a.ID - b.ID })
	if b.stacks != nil {
		e.total = 0
		for i, stack := range b.stacks {
			e.players[i].Stack = stack
			e.total += stack
		}
	}
	return e
}

// startPostflop starts a hand and puts a flop on the board without posting blinds
func startPostflop(t *testing.T, e *Engine) {
	t.Helper()
	e.StartHand()
	_, err := e.DealHoleCards(2)
	require.NoError(t, err)
	_, err = e.FlipBoardCards(3)
	require.NoError(t, err)
	e.InitBettingRound()
}

func apply(t *testing.T, e *Engine, seat int, move Move, amount int) int {
	t.Helper()
	committed, err := e.ApplyMove(seat, move, amount)
	require.NoError(t, err)
	return committed
}

// setCards replaces the dealt cards so showdowns are predictable
func setCards(e *Engine, board string, holes ...string) {
	e.board = deck.MustParseCards(board)
	for i, hole := range holes {
		e.players[i].Hole = deck.MustParseCards(hole)
	}
}

func stacks(e *Engine) []int {
	out := make([]int, len(e.players))
	for i, p := range e.players {
		out[i] = p.Stack
	}
	return out
}

func requireConserved(t *testing.T, e *Engine) {
	t.Helper()
	sum := 0
	for _, p := range e.players {
		sum += p.Chips()
	}
	for _, pot := range e.pots {
		sum += pot
	}
	require.Equal(t, e.total, sum, "chips not conserved")
}
