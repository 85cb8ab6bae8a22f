package game

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
)

// Pot is a read-only view of one pot bucket
type Pot struct {
	Amount     int
	Contenders []int // seats eligible to win it
}

// Pots returns the main pot followed by any side pots
func (e *Engine) Pots() []Pot {
	pots := make([]Pot, len(e.pots))
	for i, amount := range e.pots {
		pots[i] = Pot{Amount: amount}
		for seat, p := range e.contenders[i] {
			if p != nil {
				pots[i].Contenders = append(pots[i].Contenders, seat)
			}
		}
	}
	return pots
}

// PendingAction sums every seat's street action not yet swept into a pot
func (e *Engine) PendingAction() int {
	sum := 0
	for _, p := range e.players {
		sum += p.Action
	}
	return sum
}

// SettleStreet sweeps the street's action into the pots, opening side pots
// wherever an all-in caps what some contenders can win.
func (e *Engine) SettleStreet() error {
	initial := len(e.pots) - 1

	for {
		smallest := 0
		for _, p := range e.current() {
			if p != nil && p.Action > 0 && (smallest == 0 || p.Action < smallest) {
				smallest = p.Action
			}
		}
		if smallest == 0 {
			break
		}

		last := len(e.pots) - 1
		for _, p := range e.current() {
			if p != nil {
				e.pots[last] += p.Release(smallest)
			}
		}
		if !e.residualAction() {
			break
		}
		e.openSidePot()
	}

	// Keep the all-in players out of whatever is bet on later streets
	if e.anyAllIn() && e.NumAvailableBettors() > 1 {
		e.openSidePot()
	}

	// Folded players' chips stay in the pot they were bet into
	for _, p := range e.players {
		e.pots[initial] += p.ReleaseAll()
	}
	e.aggressor = -1

	e.logger.Debug("Street settled", "pots", e.pots)
	return e.checkConservation("settlement")
}

func (e *Engine) residualAction() bool {
	for _, p := range e.current() {
		if p != nil && p.Action > 0 {
			return true
		}
	}
	return false
}

func (e *Engine) anyAllIn() bool {
	for _, p := range e.current() {
		if p != nil && p.Stack == 0 {
			return true
		}
	}
	return false
}

// openSidePot starts a new empty pot. Seats with nothing left in play are
// excluded from it and from every later pot this hand.
func (e *Engine) openSidePot() {
	cur := e.current()
	next := make([]*Player, len(cur))
	for i, p := range cur {
		if p != nil && p.Chips() > 0 {
			next[i] = p
		}
	}
	e.pots = append(e.pots, 0)
	e.contenders = append(e.contenders, next)
}

// RankedHand is a contender's best hand at showdown
type RankedHand struct {
	Seat   int
	Player *Player
	Hand   evaluator.Hand
}

// Payout is chips paid from a pot to one seat
type Payout struct {
	Seat   int
	Player *Player
	Amount int
}

// Showdown is the outcome of resolving one pot
type Showdown struct {
	Pot     int
	Amount  int
	Ranked  []RankedHand // best first
	Winners []int        // seats sharing the best hand
	Payouts []Payout
}

// ResolveShowdown ranks every contender of pot and pays it to the best hand,
// splitting it on a tie.
func (e *Engine) ResolveShowdown(pot int) (Showdown, error) {
	if pot < 0 || pot >= len(e.pots) {
		return Showdown{}, fmt.Errorf("%w: %d", ErrInvalidPot, pot)
	}

	var ranked []RankedHand
	for seat, p := range e.contenders[pot] {
		if p == nil {
			continue
		}
		cards := make([]deck.Card, 0, len(p.Hole)+len(e.board))
		cards = append(cards, p.Hole...)
		cards = append(cards, e.board...)
		hand, err := evaluator.BestOf(cards)
		if err != nil {
			return Showdown{}, fmt.Errorf("evaluating %s: %w", p, err)
		}
		ranked = append(ranked, RankedHand{Seat: seat, Player: p, Hand: hand})
	}
	if len(ranked) == 0 {
		return Showdown{}, fmt.Errorf("%w: pot %d", ErrNoContenders, pot)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Hand.Beats(ranked[j].Hand)
	})

	winners := []int{ranked[0].Seat}
	for _, r := range ranked[1:] {
		if !r.Hand.Ties(ranked[0].Hand) {
			break
		}
		winners = append(winners, r.Seat)
	}

	result := Showdown{
		Pot:     pot,
		Amount:  e.pots[pot],
		Ranked:  ranked,
		Winners: winners,
		Payouts: e.payOut(pot, winners),
	}

	e.logger.Debug("Showdown", "pot", pot, "amount", result.Amount, "winners", winners, "best", ranked[0].Hand.String())
	return result, e.checkConservation("showdown")
}

// AwardFold pays pot to the contenders left after everyone else folded,
// normally exactly one, without looking at any cards.
func (e *Engine) AwardFold(pot int) ([]Payout, error) {
	if pot < 0 || pot >= len(e.pots) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPot, pot)
	}

	var seats []int
	for seat, p := range e.contenders[pot] {
		if p != nil {
			seats = append(seats, seat)
		}
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: pot %d", ErrNoContenders, pot)
	}

	payouts := e.payOut(pot, seats)
	return payouts, e.checkConservation("fold award")
}

// payOut empties pot into the given seats in equal integer shares. Leftover
// chips go one each to the winners closest to the left of the dealer.
func (e *Engine) payOut(pot int, seats []int) []Payout {
	n := len(e.players)
	ordered := append([]int(nil), seats...)
	sort.Slice(ordered, func(i, j int) bool {
		return (ordered[i]+n-1)%n < (ordered[j]+n-1)%n
	})

	amount := e.pots[pot]
	share, remainder := amount/len(ordered), amount%len(ordered)

	payouts := make([]Payout, 0, len(ordered))
	for i, seat := range ordered {
		won := share
		if i < remainder {
			won++
		}
		p := e.contenders[pot][seat]
		p.Collect(won)
		payouts = append(payouts, Payout{Seat: seat, Player: p, Amount: won})
	}
	e.pots[pot] = 0
	return payouts
}
