package phh

import (
	"strings"

	"github.com/lox/holdem-cli/internal/deck"
)

// Cards joins card codes without separators, e.g. "AhTd"
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.Code())
	}
	return b.String()
}

// DealHole is the dealer action giving a player their hole cards
func DealHole(player int, cards []deck.Card) string {
	return "d dh " + playerRef(player) + " " + Cards(cards)
}

// DealBoard is the dealer action turning board cards
func DealBoard(cards []deck.Card) string {
	return "d db " + Cards(cards)
}

// ShowHand is a player showing their hole cards at showdown
func ShowHand(player int, cards []deck.Card) string {
	return playerRef(player) + " sm " + Cards(cards)
}
