package game

import "errors"

var (
	// ErrInvalidSeat is returned for a seat index outside the roster
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrSeatNotInHand is returned when a folded or drained seat is asked to act
	ErrSeatNotInHand = errors.New("seat not in hand")
	// ErrIllegalMove is returned when a move is not in the seat's legal set
	ErrIllegalMove = errors.New("illegal move")
	// ErrAmountBelowMinimum is returned for a bet or raise under the minimum
	// that does not put the player all-in
	ErrAmountBelowMinimum = errors.New("amount below minimum")
	// ErrChipsNotConserved signals a chip accounting bug
	ErrChipsNotConserved = errors.New("chips not conserved")
	// ErrNoContenders is returned when a pot has nobody left to award it to
	ErrNoContenders = errors.New("pot has no contenders")
	// ErrInvalidPot is returned for a pot index that does not exist
	ErrInvalidPot = errors.New("invalid pot")
)
