package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/randutil"
)

// DealerSeat is the roster index of the dealer
const DealerSeat = 0

const headsUp = 2

// Engine runs the betting and pot rules for one match. It is not safe for
// concurrent use; the caller applies every operation in sequence.
type Engine struct {
	players []*Player // roster, index 0 is the dealer

	// Per-hand state. contenders[i] is parallel to players; nil marks a seat
	// that folded or has nothing left in play for pot i.
	contenders [][]*Player
	pots       []int
	acted      []bool
	aggressor  int
	board      []deck.Card

	bigBlind        int
	initialBigBlind int
	startingStack   int
	startingPlayers int
	round           int

	total         int // chips in play for the match
	remaining     int // players not yet eliminated, for finishing places
	dealerBusted  bool
	schedule      BlindSchedule
	onBlindRaised func(round, bigBlind int)

	deck   *deck.Deck
	rng    *rand.Rand
	logger *log.Logger
}

// NewEngine seats the players described by setup, picks the first dealer at
// random (or takes it from setup.Resume) and shuffles the deck.
func NewEngine(setup config.Setup, hooks Hooks, rng *rand.Rand, logger *log.Logger) (*Engine, error) {
	if err := setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid setup: %w", err)
	}
	if rng == nil {
		rng = randutil.New(randutil.Seed())
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	schedule := hooks.Schedule
	if schedule == nil {
		var err error
		if schedule, err = ScheduleFor(setup.BlindScheme); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		bigBlind:        setup.BigBlind,
		initialBigBlind: setup.BigBlind,
		startingStack:   setup.StartingStack,
		startingPlayers: setup.Players,
		round:           1,
		aggressor:       -1,
		schedule:        schedule,
		onBlindRaised:   hooks.OnBlindsRaised,
		deck:            deck.New(rng),
		rng:             rng,
		logger:          logger,
	}

	var dealer int
	if r := setup.Resume; r != nil {
		for i, stack := range r.Stacks {
			id := i + 1
			if len(r.IDs) > 0 {
				id = r.IDs[i]
			}
			e.players = append(e.players, NewPlayer(id, stack))
		}
		dealer = r.Dealer
		for e.round < r.Round {
			e.round++
			e.bigBlind = e.schedule(e.bigBlind, e.initialBigBlind)
		}
	} else {
		for i := range setup.Players {
			e.players = append(e.players, NewPlayer(i+1, setup.StartingStack))
		}
		dealer = rng.IntN(len(e.players))
	}

	for _, p := range e.players {
		e.total += p.Stack
	}
	e.remaining = len(e.players)
	e.cut(dealer)
	e.deck.Shuffle()

	e.logger.Info("Engine ready",
		"players", len(e.players),
		"dealer", e.players[DealerSeat],
		"big_blind", e.bigBlind,
		"round", e.round)

	return e, nil
}

// cut rotates the roster so that seat becomes the dealer. Relative seating never changes.
func (e *Engine) cut(seat int) {
	e.players = append(e.players[seat:], e.players[:seat]...)
}

// Players returns the roster, dealer first
func (e *Engine) Players() []*Player {
	return e.players
}

// Player returns the player at seat
func (e *Engine) Player(seat int) (*Player, error) {
	if seat < 0 || seat >= len(e.players) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	return e.players[seat], nil
}

// Board returns the community cards dealt so far
func (e *Engine) Board() []deck.Card {
	return append([]deck.Card(nil), e.board...)
}

// BigBlind returns the current big blind
func (e *Engine) BigBlind() int {
	return e.bigBlind
}

// Round returns the blind level, starting at 1
func (e *Engine) Round() int {
	return e.round
}

// TotalChips returns the chips in play for the match
func (e *Engine) TotalChips() int {
	return e.total
}

// StartHand snapshots the roster as the contenders, resets the pot to a single
// empty main pot and reshuffles a full deck.
func (e *Engine) StartHand() {
	e.contenders = [][]*Player{append([]*Player(nil), e.players...)}
	e.pots = []int{0}
	e.acted = make([]bool, len(e.players))
	e.aggressor = -1
	e.dealerBusted = false
	e.collectCards()
	for _, p := range e.players {
		p.Action = 0
	}
	e.deck.Reset()
	e.deck.Shuffle()
}

// collectCards moves the board and every hole card to the discard pile
func (e *Engine) collectCards() {
	e.deck.Discard(e.board...)
	e.board = nil
	for _, p := range e.players {
		e.deck.Discard(p.ClearHoleCards()...)
	}
}

// BlindPositions returns the small and big blind seats. Heads-up the dealer
// posts the small blind.
func (e *Engine) BlindPositions() (small, big int) {
	if len(e.players) == headsUp {
		small = DealerSeat
	} else {
		small = e.NextSeat(DealerSeat, false)
	}
	return small, e.NextSeat(small, false)
}

// ButtonPositions returns the dealer and blind seats for display: dealer and
// big blind heads-up, otherwise dealer, small blind and big blind.
func (e *Engine) ButtonPositions() []int {
	small, big := e.BlindPositions()
	if len(e.players) == headsUp {
		return []int{DealerSeat, big}
	}
	return []int{DealerSeat, small, big}
}

// PostBlinds commits the blinds, capped by stack, and makes the big blind the aggressor
func (e *Engine) PostBlinds() (small, big int) {
	sbSeat, bbSeat := e.BlindPositions()
	small = e.players[sbSeat].Commit(e.bigBlind / 2)
	big = e.players[bbSeat].Commit(e.bigBlind)
	e.aggressor = bbSeat

	e.logger.Debug("Blinds posted",
		"small_blind", e.players[sbSeat], "small", small,
		"big_blind", e.players[bbSeat], "big", big)
	return small, big
}

// DealHoleCards deals n cards to every seat, one card at a time around the table
func (e *Engine) DealHoleCards(n int) ([][]deck.Card, error) {
	for range n {
		for _, p := range e.players {
			card, err := e.deck.Draw()
			if err != nil {
				return nil, fmt.Errorf("dealing hole cards: %w", err)
			}
			p.TakeHoleCard(card)
		}
	}

	hands := make([][]deck.Card, len(e.players))
	for i, p := range e.players {
		hands[i] = append([]deck.Card(nil), p.Hole...)
	}
	return hands, nil
}

// FlipBoardCards burns one card then turns n cards onto the board
func (e *Engine) FlipBoardCards(n int) ([]deck.Card, error) {
	if err := e.deck.Burn(); err != nil {
		return nil, fmt.Errorf("burning card: %w", err)
	}
	cards, err := e.deck.DrawN(n)
	if err != nil {
		return nil, fmt.Errorf("flipping board cards: %w", err)
	}
	e.board = append(e.board, cards...)
	return cards, nil
}

// NextSeat steps clockwise from pos to the next seat, over the whole roster or
// only over seats still in the current pot. It returns -1 if there is none.
func (e *Engine) NextSeat(pos int, onlyInHand bool) int {
	seats := e.players
	if onlyInHand {
		seats = e.current()
	}
	n := len(seats)
	for offset := 1; offset <= n; offset++ {
		next := (pos + offset) % n
		if seats[next] != nil {
			return next
		}
	}
	return -1
}

// RaiseBlinds moves to the next blind level. It returns whether the blinds
// have now reached their cap.
func (e *Engine) RaiseBlinds() bool {
	e.round++
	old := e.bigBlind
	e.bigBlind = e.schedule(e.bigBlind, e.initialBigBlind)
	maxed := e.BlindsMaxedOut()

	e.logger.Debug("Blinds raised", "round", e.round, "from", old, "to", e.bigBlind, "maxed", maxed)
	if e.onBlindRaised != nil {
		e.onBlindRaised(e.round, e.bigBlind)
	}
	return maxed
}

// BlindsMaxedOut reports whether the big blind has reached half of all the
// chips the match started with. Blinds stop increasing from then on.
func (e *Engine) BlindsMaxedOut() bool {
	return 2*e.bigBlind >= e.startingStack*e.startingPlayers
}

// Elimination is a player knocked out of the match
type Elimination struct {
	Player *Player
	Place  int // finishing place, 2 for the runner-up
}

// EliminateBusted drops every player with an empty stack from the roster.
// Players busting in the same hand are placed in seat order from the dealer.
func (e *Engine) EliminateBusted() []Elimination {
	var (
		out       []Elimination
		survivors = make([]*Player, 0, len(e.players))
	)
	for seat, p := range e.players {
		if p.Stack > 0 {
			survivors = append(survivors, p)
			continue
		}
		e.deck.Discard(p.ClearHoleCards()...)
		out = append(out, Elimination{Player: p, Place: e.remaining})
		e.remaining--
		if seat == DealerSeat {
			e.dealerBusted = true
		}
		e.logger.Info("Player eliminated", "player", p, "place", out[len(out)-1].Place)
	}
	e.players = survivors
	return out
}

// RotateDealer passes the button to the next surviving seat. If the dealer was
// just eliminated, seat 0 already holds the next survivor.
func (e *Engine) RotateDealer() {
	if len(e.players) < 2 {
		return
	}
	if e.dealerBusted {
		e.dealerBusted = false
		return
	}
	e.cut(e.NextSeat(DealerSeat, false))
}

// MatchWinner returns the last player standing, or nil while the match is on
func (e *Engine) MatchWinner() *Player {
	if len(e.players) == 1 {
		return e.players[0]
	}
	return nil
}

// checkConservation verifies no chips were created or lost
func (e *Engine) checkConservation(stage string) error {
	sum := 0
	for _, p := range e.players {
		sum += p.Chips()
	}
	for _, pot := range e.pots {
		sum += pot
	}
	if sum != e.total {
		e.logger.Error("Chip conservation violated", "stage", stage, "have", sum, "want", e.total)
		return fmt.Errorf("%w after %s: have %d, want %d", ErrChipsNotConserved, stage, sum, e.total)
	}
	return nil
}
