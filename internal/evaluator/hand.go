// Package evaluator classifies five-card poker hands and picks the best
// five-card hand out of a larger set.
//
// A Hand is a Category plus an ordered tie-break vector. Two hands compare by
// category first and then lexicographically by tie-break values; identical
// categories and vectors are a tie.
package evaluator

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/lox/holdem-cli/internal/deck"
)

// HandSize is the number of cards in a ranked poker hand
const HandSize = 5

var (
	// ErrInvalidHandSize is returned when Rank gets anything but five cards or
	// BestOf gets fewer than five.
	ErrInvalidHandSize = errors.New("invalid hand size")
	// ErrDuplicateCard is returned when the same card appears twice
	ErrDuplicateCard = errors.New("duplicate card")
)

// Category is the class of a five-card hand, ordered weakest to strongest
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Hand is the evaluated form of exactly five cards
type Hand struct {
	Category Category
	TieBreak []int
	Cards    [HandSize]deck.Card
}

// Compare returns 1 if h beats other, -1 if other beats h and 0 on a tie
func (h Hand) Compare(other Hand) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	return slices.Compare(h.TieBreak, other.TieBreak)
}

// Beats reports whether h ranks strictly above other
func (h Hand) Beats(other Hand) bool {
	return h.Compare(other) > 0
}

// Ties reports whether h and other rank equally
func (h Hand) Ties(other Hand) bool {
	return h.Compare(other) == 0
}

// String describes the hand, e.g. "a full house, Aces full of Kings"
func (h Hand) String() string {
	v := h.TieBreak
	switch h.Category {
	case HighCard:
		return fmt.Sprintf("%s high", valueName(v[0]))
	case Pair:
		return fmt.Sprintf("a pair of %ss, %s high", valueName(v[0]), valueName(v[1]))
	case TwoPair:
		return fmt.Sprintf("two pair of %ss and %ss, %s high", valueName(v[0]), valueName(v[1]), valueName(v[2]))
	case ThreeOfAKind:
		return fmt.Sprintf("trip %ss, %s high", valueName(v[0]), valueName(v[1]))
	case Straight:
		return highName(v[0], "straight")
	case Flush:
		return highName(v[0], "flush")
	case FullHouse:
		return fmt.Sprintf("a full house, %ss full of %ss", valueName(v[0]), valueName(v[1]))
	case FourOfAKind:
		return fmt.Sprintf("quad %ss, %s high", valueName(v[0]), valueName(v[1]))
	case StraightFlush:
		if v[0] == int(deck.Ace) {
			return "a royal flush"
		}
		return highName(v[0], "straight flush")
	default:
		return "unknown hand"
	}
}

// highName is "a 9-high flush", "an Ace-high straight"
func highName(v int, kind string) string {
	name := valueName(v)
	article := "a"
	if name == "Ace" || name == "8" {
		article = "an"
	}
	return fmt.Sprintf("%s %s-high %s", article, name, kind)
}

func valueName(v int) string {
	switch v {
	case 1, 14:
		return "Ace"
	case 13:
		return "King"
	case 12:
		return "Queen"
	case 11:
		return "Jack"
	case 10:
		return "Ten"
	default:
		return fmt.Sprint(v)
	}
}

// valueCount is a card value together with how many times it occurs
type valueCount struct {
	value int
	count int
}

// Rank classifies exactly five cards
func Rank(cards []deck.Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, fmt.Errorf("%w: rank needs %d cards, got %d", ErrInvalidHandSize, HandSize, len(cards))
	}
	if err := checkDistinct(cards); err != nil {
		return Hand{}, err
	}

	var hand Hand
	copy(hand.Cards[:], cards)

	groups := groupValues(cards)
	switch len(groups) {
	case 5:
		values := make([]int, 0, HandSize)
		for _, g := range groups {
			values = append(values, g.value)
		}
		straight := isRun(values)
		if !straight && slices.Equal(values, []int{14, 5, 4, 3, 2}) {
			// Wheel: the ace plays low, so its tie-break value drops to 1
			values = []int{5, 4, 3, 2, 1}
			straight = true
		}
		flush := sameSuit(cards)

		switch {
		case straight && flush:
			hand.Category = StraightFlush
		case straight:
			hand.Category = Straight
		case flush:
			hand.Category = Flush
		default:
			hand.Category = HighCard
		}
		hand.TieBreak = values
	case 4:
		hand.Category = Pair
		hand.TieBreak = groupOrder(groups)
	case 3:
		switch groups[0].count {
		case 3:
			hand.Category = ThreeOfAKind
		case 2:
			hand.Category = TwoPair
		default:
			return Hand{}, fmt.Errorf("cannot classify hand %s: three values with top frequency %d", deck.FormatCards(cards), groups[0].count)
		}
		hand.TieBreak = groupOrder(groups)
	case 2:
		switch groups[0].count {
		case 4:
			hand.Category = FourOfAKind
		case 3:
			hand.Category = FullHouse
		default:
			return Hand{}, fmt.Errorf("cannot classify hand %s: two values with top frequency %d", deck.FormatCards(cards), groups[0].count)
		}
		hand.TieBreak = groupOrder(groups)
	default:
		return Hand{}, fmt.Errorf("cannot classify hand %s: %d distinct values", deck.FormatCards(cards), len(groups))
	}

	return hand, nil
}

// groupValues counts card values and orders them by frequency, then value, both descending
func groupValues(cards []deck.Card) []valueCount {
	var counts [15]int
	for _, c := range cards {
		counts[c.Value()]++
	}

	groups := make([]valueCount, 0, len(cards))
	for v := int(deck.Ace); v >= int(deck.Two); v-- {
		if counts[v] > 0 {
			groups = append(groups, valueCount{value: v, count: counts[v]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})
	return groups
}

func groupOrder(groups []valueCount) []int {
	values := make([]int, len(groups))
	for i, g := range groups {
		values[i] = g.value
	}
	return values
}

// isRun reports whether descending values step down by exactly one
func isRun(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1]-values[i] != 1 {
			return false
		}
	}
	return true
}

func sameSuit(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// checkDistinct rejects out-of-range ranks and repeated cards
func checkDistinct(cards []deck.Card) error {
	seen := make(map[deck.Card]struct{}, len(cards))
	for _, c := range cards {
		if !c.Rank.Valid() {
			return fmt.Errorf("invalid card rank %d", c.Rank)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
