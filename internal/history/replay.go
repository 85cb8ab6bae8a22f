package history

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/phh"
)

// ErrInvalidHand is returned for hand histories that cannot be replayed
var ErrInvalidHand = errors.New("invalid hand history")

// Find lists the .phh files below dir, grouped by match directory and in
// hand number order within each.
func Find(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".phh" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b string) int {
		if c := strings.Compare(filepath.Dir(a), filepath.Dir(b)); c != 0 {
			return c
		}
		na, errA := strconv.Atoi(strings.TrimSuffix(filepath.Base(a), ".phh"))
		nb, errB := strconv.Atoi(strings.TrimSuffix(filepath.Base(b), ".phh"))
		if errA != nil || errB != nil {
			return strings.Compare(a, b)
		}
		return na - nb
	})
	return files, nil
}

// Replay publishes a recorded hand to bus as the events a live match would
// have produced. Side pots are not recorded, so all winnings are reported as
// a single pot.
func Replay(hand *phh.HandHistory, bus match.EventBus) error {
	r, err := newReplay(hand)
	if err != nil {
		return err
	}
	return r.run(bus)
}

type replay struct {
	hand    *phh.HandHistory
	actions []phh.Action

	n      int
	seats  []int // PHH index -> seat
	ids    []int
	stacks []int
	street []int // street action
	paid   []int // chips put in over the hand
	folded []bool
	hole   [][]deck.Card
	shown  []int
}

func newReplay(hand *phh.HandHistory) (*replay, error) {
	n := len(hand.StartingStacks)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d players", ErrInvalidHand, n)
	}
	if len(hand.BlindsOrStraddles) != n {
		return nil, fmt.Errorf("%w: %d blinds for %d players", ErrInvalidHand, len(hand.BlindsOrStraddles), n)
	}

	r := &replay{
		hand:   hand,
		n:      n,
		seats:  make([]int, n),
		ids:    make([]int, n),
		stacks: slices.Clone(hand.StartingStacks),
		street: make([]int, n),
		paid:   make([]int, n),
		folded: make([]bool, n),
		hole:   make([][]deck.Card, n),
	}

	for i := range n {
		// Without seat numbers, assume the usual layout: dealer on seat 0,
		// small blind next (heads-up the dealer is the small blind)
		switch {
		case len(hand.Seats) == n:
			r.seats[i] = hand.Seats[i] - 1
		case n == 2:
			r.seats[i] = i
		default:
			r.seats[i] = (i + 1) % n
		}
		if r.seats[i] < 0 || r.seats[i] >= n || slices.Contains(r.seats[:i], r.seats[i]) {
			return nil, fmt.Errorf("%w: bad seat %d", ErrInvalidHand, r.seats[i]+1)
		}

		r.ids[i] = i + 1
		if i < len(hand.Players) {
			if _, err := fmt.Sscanf(hand.Players[i], "Player %d", &r.ids[i]); err != nil {
				r.ids[i] = i + 1
			}
		}

		blind := min(hand.BlindsOrStraddles[i], r.stacks[i])
		r.stacks[i] -= blind
		r.street[i] = blind
		r.paid[i] = blind
	}

	for _, s := range hand.Actions {
		action, ok, err := phh.ParseAction(s)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if action.Player >= n {
			return nil, fmt.Errorf("%w: player p%d in a %d player hand", ErrInvalidHand, action.Player+1, n)
		}
		if action.Code == phh.CodeDealHole {
			r.hole[action.Player] = action.Cards
			continue
		}
		r.actions = append(r.actions, action)
	}
	return r, nil
}

func (r *replay) run(bus match.EventBus) error {
	h := r.hand
	at := h.Timestamp
	number := metadataInt(h.Metadata, "hand_number")

	start := match.HandStartEvent{
		MatchID:        h.Table,
		HandID:         h.HandID,
		Number:         number,
		Round:          metadataInt(h.Metadata, "round"),
		BigBlind:       h.MinBet,
		Seats:          r.seatInfo(true),
		SmallBlindSeat: r.seats[0],
		BigBlindSeat:   r.seats[1],
		SmallBlind:     r.street[0],
		BigBlindPosted: r.street[1],
		At:             at,
	}
	bus.Publish(start)

	var board []deck.Card
	street := match.Preflop
	for _, a := range r.actions {
		switch a.Code {
		case phh.CodeDealBoard:
			if street == match.River {
				return fmt.Errorf("%w: board dealt after the river", ErrInvalidHand)
			}
			street++
			board = append(board, a.Cards...)
			clear(r.street)
			bus.Publish(match.StreetChangeEvent{
				HandID: h.HandID,
				Street: street,
				Cards:  a.Cards,
				Board:  slices.Clone(board),
				Pots:   []game.Pot{{Amount: sum(r.paid)}},
				At:     at,
			})
		case phh.CodeShow:
			r.hole[a.Player] = a.Cards
			r.shown = append(r.shown, a.Player)
		default:
			bus.Publish(r.playerAction(h.HandID, street, a))
		}
	}

	award, err := r.award(board)
	if err != nil {
		return err
	}
	if award.Amount > 0 {
		bus.Publish(award)
	}

	final := r.seatInfo(false)
	for i, s := range final {
		final[i].Action = 0
		if idx := slices.Index(r.seats, s.Seat); idx < len(h.FinishingStacks) {
			final[i].Stack = h.FinishingStacks[idx]
		} else {
			final[i].Stack = r.stacks[idx] + winnings(h, idx)
		}
	}
	bus.Publish(match.HandEndEvent{HandID: h.HandID, Number: number, Board: board, Seats: final, At: at})

	// Busted players leave in seat order, as the engine eliminates them
	place := r.n
	var left []match.SeatInfo
	for _, s := range final {
		if s.Stack > 0 {
			left = append(left, s)
			continue
		}
		bus.Publish(match.EliminatedEvent{PlayerID: s.PlayerID, Place: place, At: at})
		place--
	}
	if len(left) == 1 {
		bus.Publish(match.MatchEndEvent{MatchID: h.Table, WinnerID: left[0].PlayerID, Hands: number, At: at})
	}
	return nil
}

func (r *replay) playerAction(handID string, street match.Street, a phh.Action) match.PlayerActionEvent {
	p := a.Player
	highest := 0
	for i, action := range r.street {
		if !r.folded[i] {
			highest = max(highest, action)
		}
	}
	e := match.PlayerActionEvent{
		HandID:   handID,
		Street:   street,
		Seat:     r.seats[p],
		PlayerID: r.ids[p],
	}

	committed := 0
	switch a.Code {
	case phh.CodeFold:
		e.Move = game.Fold
		r.folded[p] = true
	case phh.CodeCheckCall:
		e.Move = game.Check
		if r.street[p] < highest {
			e.Move = game.Call
			committed = min(highest-r.street[p], r.stacks[p])
		}
	case phh.CodeBetRaise:
		e.Move = game.Raise
		if highest == 0 {
			e.Move = game.Bet
		}
		e.Amount = a.Amount
		committed = min(max(a.Amount-r.street[p], 0), r.stacks[p])
	}

	r.stacks[p] -= committed
	r.street[p] += committed
	r.paid[p] += committed

	e.Committed = committed
	e.Action = r.street[p]
	e.Stack = r.stacks[p]
	e.AllIn = r.stacks[p] == 0 && e.Move != game.Fold
	return e
}

func (r *replay) award(board []deck.Card) (match.PotAwardedEvent, error) {
	h := r.hand
	e := match.PotAwardedEvent{
		HandID:   h.HandID,
		PotCount: 1,
		Amount:   sum(r.paid),
		Showdown: len(r.shown) > 0,
		At:       h.Timestamp,
	}

	for _, p := range r.shown {
		cards := append(slices.Clone(r.hole[p]), board...)
		best, err := evaluator.BestOf(cards)
		if err != nil {
			return e, fmt.Errorf("%w: p%d shows %s: %v", ErrInvalidHand, p+1, phh.Cards(r.hole[p]), err)
		}
		e.Ranked = append(e.Ranked, match.HandResult{Seat: r.seats[p], PlayerID: r.ids[p], Hole: r.hole[p], Hand: best})
	}
	slices.SortStableFunc(e.Ranked, func(a, b match.HandResult) int {
		return b.Hand.Compare(a.Hand)
	})

	for i := range r.n {
		if won := winnings(h, i); won > 0 {
			e.Winners = append(e.Winners, r.seats[i])
			e.Payouts = append(e.Payouts, match.Payout{Seat: r.seats[i], PlayerID: r.ids[i], Amount: won})
		}
	}
	return e, nil
}

// seatInfo lists players in seat order
func (r *replay) seatInfo(withHole bool) []match.SeatInfo {
	out := make([]match.SeatInfo, r.n)
	for i, seat := range r.seats {
		out[seat] = match.SeatInfo{Seat: seat, PlayerID: r.ids[i], Stack: r.stacks[i], Action: r.street[i]}
		if withHole {
			out[seat].Hole = slices.Clone(r.hole[i])
		}
	}
	return out
}

func winnings(h *phh.HandHistory, i int) int {
	if i < len(h.Winnings) {
		return h.Winnings[i]
	}
	return 0
}

func metadataInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
