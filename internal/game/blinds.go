package game

import (
	"fmt"

	"github.com/lox/holdem-cli/internal/config"
)

// BlindSchedule computes the next big blind from the current and the initial one
type BlindSchedule func(current, initial int) int

// Additive adds the initial big blind at every level
func Additive(current, initial int) int {
	return current + initial
}

// Doubling doubles the big blind at every level
func Doubling(current, _ int) int {
	return current * 2
}

// ScheduleFor resolves a scheme name from the setup
func ScheduleFor(name string) (BlindSchedule, error) {
	switch name {
	case config.SchemeAdditive, "":
		return Additive, nil
	case config.SchemeDoubling:
		return Doubling, nil
	default:
		return nil, fmt.Errorf("unknown blind scheme %q", name)
	}
}

// Hooks are runtime callbacks that never belong in a saved setup
type Hooks struct {
	// Schedule overrides the scheme named in the setup
	Schedule BlindSchedule
	// OnBlindsRaised is called after every blind increase
	OnBlindsRaised func(round, bigBlind int)
}
