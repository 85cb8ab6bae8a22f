package game

import (
	"fmt"

	"github.com/lox/holdem-cli/internal/deck"
)

// Player is one seat's chips and cards. A player lives for the whole match and
// is dropped from the roster once its stack is empty after a hand.
type Player struct {
	ID     int // stable for the match, never reused
	Stack  int // chips not committed on this street
	Action int // chips committed on this street, not yet in a pot
	Hole   []deck.Card
}

// NewPlayer creates a player holding stack chips
func NewPlayer(id, stack int) *Player {
	return &Player{ID: id, Stack: stack}
}

// Commit moves up to n chips from the stack to the current action and returns
// how many moved. Committing more than the stack goes all-in.
func (p *Player) Commit(n int) int {
	if n < 0 {
		n = 0
	}
	if n > p.Stack {
		n = p.Stack
	}
	p.Stack -= n
	p.Action += n
	return n
}

// Release removes up to n chips from the current action and returns them
func (p *Player) Release(n int) int {
	if n > p.Action {
		n = p.Action
	}
	if n < 0 {
		n = 0
	}
	p.Action -= n
	return n
}

// ReleaseAll removes the whole current action
func (p *Player) ReleaseAll() int {
	return p.Release(p.Action)
}

// Collect adds won chips to the stack
func (p *Player) Collect(n int) {
	p.Stack += n
}

// AllIn reports whether the player has nothing left to bet
func (p *Player) AllIn() bool {
	return p.Stack == 0
}

// Chips is stack plus current action
func (p *Player) Chips() int {
	return p.Stack + p.Action
}

// TakeHoleCard adds a dealt card
func (p *Player) TakeHoleCard(c deck.Card) {
	p.Hole = append(p.Hole, c)
}

// ClearHoleCards gives back the hole cards
func (p *Player) ClearHoleCards() []deck.Card {
	cards := p.Hole
	p.Hole = nil
	return cards
}

func (p *Player) String() string {
	return fmt.Sprintf("Player %d", p.ID)
}
