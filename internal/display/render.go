// Package display renders match events to the terminal and prompts human
// players for their moves.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/match"
)

// Renderer writes a running commentary of match events. Hole cards are only
// printed when they are shown down, so one terminal can be shared by every
// player.
type Renderer struct {
	out    io.Writer
	styles styles
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	return &Renderer{out: w, styles: newStyles(w, noColor)}
}

// OnEvent implements match.EventSubscriber
func (r *Renderer) OnEvent(event match.Event) {
	switch e := event.(type) {
	case match.MatchStartEvent:
		r.line(r.styles.header.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
		r.line(r.styles.info.Render(fmt.Sprintf("%d players, big blind %d (seed %d)", len(e.Players), e.BigBlind, e.Seed)))
	case match.BlindsEvent:
		r.blinds(e)
	case match.HandStartEvent:
		r.handStart(e)
	case match.StreetChangeEvent:
		r.line("")
		r.line(fmt.Sprintf("%s %s  %s",
			r.styles.street.Render("*** "+strings.ToUpper(e.Street.String())+" ***"),
			r.styles.cards(e.Board),
			r.styles.info.Render(potSummary(e.Pots))))
	case match.PlayerActionEvent:
		r.line(describeAction(e))
	case match.SeatSkippedEvent:
		r.line(r.styles.info.Render(fmt.Sprintf("%s is all-in", playerName(e.PlayerID))))
	case match.NoBettingEvent:
		r.line(r.styles.info.Render(fmt.Sprintf("No betting on the %s", strings.ToLower(e.Street.String()))))
	case match.PotAwardedEvent:
		r.potAwarded(e)
	case match.EliminatedEvent:
		r.line(r.styles.warning.Render(fmt.Sprintf("%s is eliminated in %s place", playerName(e.PlayerID), ordinal(e.Place))))
	case match.HandEndEvent:
		stacks := make([]string, len(e.Seats))
		for i, s := range e.Seats {
			stacks[i] = fmt.Sprintf("%s: %d", playerName(s.PlayerID), s.Stack)
		}
		r.line(r.styles.info.Render(strings.Join(stacks, "  ")))
	case match.MatchEndEvent:
		r.line("")
		r.line(r.styles.success.Render(fmt.Sprintf("%s wins the match after %d hands!", playerName(e.WinnerID), e.Hands)))
	}
}

func (r *Renderer) blinds(e match.BlindsEvent) {
	switch {
	case e.MaxedOut && e.Remaining == 0:
		r.line(r.styles.warning.Render(fmt.Sprintf("Blinds are at their maximum: big blind %d", e.BigBlind)))
	case e.Raised:
		r.line(r.styles.warning.Render(fmt.Sprintf("Blinds up! Round %d, big blind %d", e.Round, e.BigBlind)))
	default:
		r.line(r.styles.info.Render(fmt.Sprintf("Blinds start at %d, next increase in %s", e.BigBlind, e.Remaining)))
	}
}

func (r *Renderer) handStart(e match.HandStartEvent) {
	r.line("")
	r.line(r.styles.header.Render(fmt.Sprintf("Hand #%d", e.Number)) + " " +
		r.styles.info.Render(fmt.Sprintf("round %d, big blind %d", e.Round, e.BigBlind)))

	for _, s := range e.Seats {
		var marker string
		switch s.Seat {
		case game.DealerSeat:
			marker = " (D)"
		case e.SmallBlindSeat:
			marker = " (SB)"
		case e.BigBlindSeat:
			marker = " (BB)"
		}
		r.line(fmt.Sprintf("  %s%s: %d chips", playerName(s.PlayerID), marker, s.Stack+s.Action))
	}

	r.line(fmt.Sprintf("%s posts small blind %d", playerName(e.Seats[e.SmallBlindSeat].PlayerID), e.SmallBlind))
	r.line(fmt.Sprintf("%s posts big blind %d", playerName(e.Seats[e.BigBlindSeat].PlayerID), e.BigBlindPosted))
	r.line(r.styles.street.Render("*** PRE-FLOP ***"))
}

func (r *Renderer) potAwarded(e match.PotAwardedEvent) {
	if e.Amount == 0 {
		return
	}

	name := potName(e.Pot, e.PotCount)
	if !e.Showdown {
		for _, p := range e.Payouts {
			r.line(r.styles.success.Render(fmt.Sprintf("%s wins %d from %s uncontested", playerName(p.PlayerID), p.Amount, name)))
		}
		return
	}

	r.line(r.styles.street.Render(fmt.Sprintf("*** SHOWDOWN: %s ***", strings.ToUpper(name))))
	for _, h := range e.Ranked {
		r.line(fmt.Sprintf("%s shows %s  %s", playerName(h.PlayerID), r.styles.cards(h.Hole), r.styles.handInfo.Render(h.Hand.String())))
	}
	for _, p := range e.Payouts {
		r.line(r.styles.success.Render(fmt.Sprintf("%s wins %d from %s", playerName(p.PlayerID), p.Amount, name)))
	}
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.out, s)
}

func describeAction(e match.PlayerActionEvent) string {
	name := playerName(e.PlayerID)
	var s string
	switch e.Move {
	case game.Check:
		s = name + " checks"
	case game.Fold:
		s = name + " folds"
	case game.Call:
		s = fmt.Sprintf("%s calls %d", name, e.Committed)
	case game.Bet:
		s = fmt.Sprintf("%s bets %d", name, e.Action)
	case game.Raise:
		s = fmt.Sprintf("%s raises to %d", name, e.Action)
	default:
		s = fmt.Sprintf("%s %s", name, e.Move)
	}
	if e.AllIn {
		s += " and is all-in"
	}
	return s
}

func playerName(id int) string {
	return fmt.Sprintf("Player %d", id)
}

func potName(pot, count int) string {
	switch {
	case count == 1:
		return "the pot"
	case pot == 0:
		return "the main pot"
	default:
		return fmt.Sprintf("side pot %d", pot)
	}
}

func potSummary(pots []game.Pot) string {
	parts := make([]string, 0, len(pots))
	for i, p := range pots {
		if p.Amount == 0 {
			continue
		}
		if i == 0 {
			parts = append(parts, fmt.Sprintf("pot %d", p.Amount))
		} else {
			parts = append(parts, fmt.Sprintf("side pot %d: %d", i, p.Amount))
		}
	}
	return strings.Join(parts, ", ")
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
