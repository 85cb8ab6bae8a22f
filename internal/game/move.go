package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a betting decision
type Move int

const (
	Check Move = iota
	Bet
	Raise
	Call
	Fold
)

// String returns the lowercase name used on the prompt
func (m Move) String() string {
	switch m {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case Call:
		return "call"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// TakesAmount reports whether the move needs a chip amount
func (m Move) TakesAmount() bool {
	return m == Bet || m == Raise
}

// ParseMove parses "check", "call", "fold", "bet N" or "raise N". Bet and raise
// amounts are the player's total action for the street after the move.
func ParseMove(s string) (Move, int, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("empty move")
	}

	var move Move
	switch fields[0] {
	case "check":
		move = Check
	case "bet":
		move = Bet
	case "raise":
		move = Raise
	case "call":
		move = Call
	case "fold":
		move = Fold
	default:
		return 0, 0, fmt.Errorf("unknown move %q", fields[0])
	}

	if !move.TakesAmount() {
		if len(fields) != 1 {
			return 0, 0, fmt.Errorf("%s takes no amount", move)
		}
		return move, 0, nil
	}

	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%s needs an amount, e.g. %q", move, move.String()+" 100")
	}
	amount, err := strconv.Atoi(fields[1])
	if err != nil || amount <= 0 {
		return 0, 0, fmt.Errorf("invalid amount %q", fields[1])
	}
	return move, amount, nil
}
