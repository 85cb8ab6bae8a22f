package match

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/game"
)

// ErrQuit is returned by an agent whose player wants to stop the match
var ErrQuit = errors.New("quit")

// Street is a betting round of a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// boardCards is how many cards each street turns
var boardCards = map[Street]int{Flop: 3, Turn: 1, River: 1}

// String returns the street name
func (s Street) String() string {
	switch s {
	case Preflop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// TurnView is the read-only state an agent decides from
type TurnView struct {
	HandID    string
	Street    Street
	Seat      int
	PlayerID  int
	Stack     int
	Action    int
	Hole      []deck.Card
	Board     []deck.Card
	Moves     []game.Move
	Minimum   int // least total action for a bet or raise, unless all-in
	MaxAction int
	BigBlind  int
	Pots      []game.Pot
	Pending   int // chips bet this street, not yet in a pot
}

// Chips is everything the seat can still put in this street
func (v TurnView) Chips() int {
	return v.Stack + v.Action
}

// CanPlay reports whether move is legal for this turn
func (v TurnView) CanPlay(move game.Move) bool {
	return slices.Contains(v.Moves, move)
}

// Decision is an agent's chosen move. Amount is the total street action for
// a bet or raise and ignored otherwise.
type Decision struct {
	Move   game.Move
	Amount int
}

// Agent chooses moves for one or more players. Decide may block, e.g. waiting
// for terminal input, and should give up when ctx is done.
type Agent interface {
	Decide(ctx context.Context, view TurnView) (Decision, error)
}

// RandomAgent picks a uniformly random legal move and, for bets and raises, a
// random legal amount. It exercises the rules rather than playing well.
type RandomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent creates a random agent drawing from rng
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Decide(ctx context.Context, view TurnView) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	move := view.Moves[a.rng.IntN(len(view.Moves))]
	if !move.TakesAmount() {
		return Decision{Move: move}, nil
	}

	lo, hi := max(view.Minimum, view.MaxAction+1), view.Chips()
	if lo >= hi {
		return Decision{Move: move, Amount: hi}, nil
	}
	return Decision{Move: move, Amount: lo + a.rng.IntN(hi-lo+1)}, nil
}
