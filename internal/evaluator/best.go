package evaluator

import (
	"fmt"

	"github.com/lox/holdem-cli/internal/deck"
)

// BestOf returns the highest ranked five-card hand that can be made from
// cards, trying every five-card combination (21 of them for seven cards).
// When several combinations tie, the first one enumerated is kept.
func BestOf(cards []deck.Card) (Hand, error) {
	if len(cards) < HandSize {
		return Hand{}, fmt.Errorf("%w: best hand needs at least %d cards, got %d", ErrInvalidHandSize, HandSize, len(cards))
	}
	if err := checkDistinct(cards); err != nil {
		return Hand{}, err
	}

	var (
		best  Hand
		found bool
		combo = make([]deck.Card, HandSize)
	)
	for _, idx := range Combinations(len(cards), HandSize) {
		for i, j := range idx {
			combo[i] = cards[j]
		}
		hand, err := Rank(combo)
		if err != nil {
			return Hand{}, err
		}
		if !found || hand.Beats(best) {
			best = hand
			found = true
		}
	}
	return best, nil
}

// Combinations lists every k-element index subset of 0..n-1 in lexicographic order
func Combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}

	var (
		result [][]int
		idx    = make([]int, k)
	)
	for i := range idx {
		idx[i] = i
	}
	for {
		result = append(result, append([]int(nil), idx...))

		// Find the rightmost index that can still move right
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return result
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
