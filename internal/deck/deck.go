package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/holdem-cli/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
// With a fixed 52-card deck this only happens through a counting bug upstream.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a 52-card draw source with a discard pile. Between resets every card
// is in exactly one of: the deck, the discard pile, or a hand/board it was drawn to.
type Deck struct {
	cards   []Card
	discard []Card
	rng     *rand.Rand
}

// New creates an ordered 52-card deck. A nil rng uses a randomly seeded source.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.New(randutil.Seed())
	}
	d := &Deck{
		cards:   make([]Card, 0, Size),
		discard: make([]Card, 0, Size),
		rng:     rng,
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of the cards remaining in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN draws n cards, failing without drawing anything if fewer remain
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Burn draws the top card straight onto the discard pile
func (d *Deck) Burn() error {
	card, err := d.Draw()
	if err != nil {
		return err
	}
	d.Discard(card)
	return nil
}

// Discard places cards on the discard pile
func (d *Deck) Discard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

// Reset returns every drawn and discarded card to the deck in fresh order.
// The deck is not shuffled; call Shuffle afterwards.
func (d *Deck) Reset() {
	d.discard = d.discard[:0]
	d.fill()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Discarded returns the number of cards on the discard pile
func (d *Deck) Discarded() int {
	return len(d.discard)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
