package game

import (
	"fmt"
	"slices"
)

// RaiseMultiple is how many times the current top action a raise must reach
const RaiseMultiple = 2

// current returns the contenders of the newest pot, where all betting happens
func (e *Engine) current() []*Player {
	if len(e.contenders) == 0 {
		return nil
	}
	return e.contenders[len(e.contenders)-1]
}

func (e *Engine) contender(seat int) (*Player, error) {
	if seat < 0 || seat >= len(e.players) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeat, seat)
	}
	cur := e.current()
	if seat >= len(cur) || cur[seat] == nil {
		return nil, fmt.Errorf("%w: seat %d", ErrSeatNotInHand, seat)
	}
	return cur[seat], nil
}

// MaxAction is the highest street action among the current contenders
func (e *Engine) MaxAction() int {
	highest := 0
	for _, p := range e.current() {
		if p != nil && p.Action > highest {
			highest = p.Action
		}
	}
	return highest
}

// NumInHand counts the seats still contending the newest pot
func (e *Engine) NumInHand() int {
	n := 0
	for _, p := range e.current() {
		if p != nil {
			n++
		}
	}
	return n
}

// NumAvailableBettors counts current contenders that still have chips behind
func (e *Engine) NumAvailableBettors() int {
	n := 0
	for _, p := range e.current() {
		if p != nil && p.Stack > 0 {
			n++
		}
	}
	return n
}

// Aggressor returns the seat that set the current top action, or -1
func (e *Engine) Aggressor() int {
	return e.aggressor
}

// BettingOpen reports whether a street gets a betting round. Preflop always
// does; later streets need at least two players who can still bet.
func (e *Engine) BettingOpen(preflop bool) bool {
	return preflop || e.NumAvailableBettors() > 1
}

// InitBettingRound clears the acted flags for a new street. Empty slots count
// as having acted.
func (e *Engine) InitBettingRound() {
	cur := e.current()
	e.acted = make([]bool, len(cur))
	for i, p := range cur {
		e.acted[i] = p == nil
	}
}

// FirstToAct returns the opening seat: left of the big blind preflop, left of
// the dealer afterwards.
func (e *Engine) FirstToAct(preflop bool) int {
	if preflop {
		_, big := e.BlindPositions()
		return e.NextSeat(big, true)
	}
	return e.NextSeat(DealerSeat, true)
}

// LegalMoves returns the moves open to seat and the minimum amount to play
// with a bet or raise. A seat with no chips behind has no moves.
func (e *Engine) LegalMoves(seat int, preflop bool) ([]Move, int, error) {
	p, err := e.contender(seat)
	if err != nil {
		return nil, 0, err
	}
	if p.Stack == 0 {
		return nil, 0, nil
	}

	var (
		moves        []Move
		minimum      int
		maxAction    = e.MaxAction()
		canRaise     = p.Stack+p.Action > maxAction
		multipleLeft = e.NumAvailableBettors() > 1
	)

	if p.Action < maxAction {
		moves = append(moves, Call)
		if multipleLeft && canRaise {
			moves = append(moves, Raise)
		}
		minimum = min(p.Stack, RaiseMultiple*maxAction)
	} else {
		moves = append(moves, Check)
		if multipleLeft {
			// Preflop the big blind may raise its own blind
			if preflop && canRaise {
				moves = append(moves, Raise)
			} else {
				moves = append(moves, Bet)
			}
		}
		if preflop {
			minimum = min(p.Stack, RaiseMultiple*e.bigBlind)
		} else {
			minimum = min(p.Stack, e.bigBlind)
		}
	}

	return append(moves, Fold), minimum, nil
}

// ApplyMove plays a move for seat and returns the chips it moved from stack
// to action. Bet and raise amounts are the seat's total action after the move;
// anything beyond the stack is clamped to all-in, as is a short call.
func (e *Engine) ApplyMove(seat int, move Move, amount int) (int, error) {
	// No board yet means preflop
	moves, minimum, err := e.LegalMoves(seat, len(e.board) == 0)
	if err != nil {
		return 0, err
	}
	if !slices.Contains(moves, move) {
		return 0, fmt.Errorf("%w: %s for seat %d (legal: %v)", ErrIllegalMove, move, seat, moves)
	}

	p := e.current()[seat]
	maxAction := e.MaxAction()
	committed := 0

	switch move {
	case Check:
	case Bet, Raise:
		if err := CheckAmount(amount, minimum, maxAction, p.Chips()); err != nil {
			return 0, fmt.Errorf("%s for seat %d: %w", move, seat, err)
		}
		committed = p.Commit(amount - p.Action)
		e.aggressor = seat
	case Call:
		committed = p.Commit(maxAction - p.Action)
	case Fold:
		for _, pot := range e.contenders {
			if seat < len(pot) && pot[seat] == p {
				pot[seat] = nil
			}
		}
	}
	e.acted[seat] = true

	e.logger.Debug("Move applied",
		"player", p,
		"move", move.String(),
		"amount", amount,
		"committed", committed,
		"action", p.Action,
		"stack", p.Stack)
	return committed, nil
}

// CheckAmount validates the target action of a bet or raise. It must reach
// minimum and top maxAction unless it puts all chips in.
func CheckAmount(amount, minimum, maxAction, chips int) error {
	if amount >= chips {
		return nil
	}
	if amount < minimum || amount <= maxAction {
		return fmt.Errorf("%w: %d, need at least %d", ErrAmountBelowMinimum, amount, max(minimum, maxAction+1))
	}
	return nil
}

// SkipSeat marks a seat with no legal moves as done for the street
func (e *Engine) SkipSeat(seat int) error {
	if _, err := e.contender(seat); err != nil {
		return err
	}
	e.acted[seat] = true
	return nil
}

// RoundOver reports whether the street's betting is finished: at most one
// contender is left, or everyone has acted and is level with the top action
// or all-in.
func (e *Engine) RoundOver() bool {
	if e.NumInHand() <= 1 {
		return true
	}
	for _, acted := range e.acted {
		if !acted {
			return false
		}
	}
	maxAction := e.MaxAction()
	for _, p := range e.current() {
		if p != nil && p.Action != maxAction && p.Stack != 0 {
			return false
		}
	}
	return true
}

// HandOver reports whether the hand ended without a showdown: a single pot
// with a single contender left.
func (e *Engine) HandOver() bool {
	return len(e.pots) < 2 && e.NumInHand() < 2
}
