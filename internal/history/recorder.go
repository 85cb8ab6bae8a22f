// Package history exports every finished hand as a PHH file.
package history

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-cli/internal/fileutil"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/phh"
)

// Recorder subscribes to match events and writes <dir>/<match id>/<hand>.phh
// when each hand ends. Write failures are logged and kept in Err; recording
// carries on with the next hand.
type Recorder struct {
	dir    string
	logger *log.Logger

	matchID string
	hand    *phh.HandHistory
	number  int
	index   []int // seat -> PHH player index
	written int
	err     error
}

// NewRecorder creates a recorder writing below dir
func NewRecorder(dir string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{dir: dir, logger: logger.WithPrefix("history")}
}

// Err returns the first write error, if any
func (r *Recorder) Err() error {
	return r.err
}

// Written is the number of hands saved so far
func (r *Recorder) Written() int {
	return r.written
}

// OnEvent implements match.EventSubscriber
func (r *Recorder) OnEvent(event match.Event) {
	switch e := event.(type) {
	case match.MatchStartEvent:
		r.matchID = e.MatchID
	case match.HandStartEvent:
		r.startHand(e)
	case match.StreetChangeEvent:
		if r.hand != nil {
			r.hand.Actions = append(r.hand.Actions, phh.DealBoard(e.Cards))
		}
	case match.PlayerActionEvent:
		if r.hand == nil {
			return
		}
		if action, ok := phh.FormatAction(r.index[e.Seat], e.Move, e.Action); ok {
			r.hand.Actions = append(r.hand.Actions, action)
		}
	case match.PotAwardedEvent:
		r.potAwarded(e)
	case match.HandEndEvent:
		r.finishHand(e)
	}
}

// startHand lays out players in PHH order, beginning with the small blind
func (r *Recorder) startHand(e match.HandStartEvent) {
	n := len(e.Seats)
	hand := &phh.HandHistory{
		Variant:           phh.VariantNoLimitHoldem,
		Table:             r.matchID,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            e.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Actions:           make([]string, 0, n+16),
		Players:           make([]string, n),
		HandID:            e.HandID,
		Timestamp:         e.At,
		Metadata:          map[string]any{"hand_number": e.Number, "round": e.Round},
	}

	r.index = make([]int, n)
	for i := range n {
		seat := (e.SmallBlindSeat + i) % n
		s := e.Seats[seat]
		r.index[seat] = i
		hand.Seats[i] = seat + 1
		hand.StartingStacks[i] = s.Stack + s.Action
		hand.Players[i] = fmt.Sprintf("Player %d", s.PlayerID)
	}
	hand.BlindsOrStraddles[r.index[e.SmallBlindSeat]] = e.SmallBlind
	hand.BlindsOrStraddles[r.index[e.BigBlindSeat]] = e.BigBlindPosted

	for i := range n {
		seat := (e.SmallBlindSeat + i) % n
		hand.Actions = append(hand.Actions, phh.DealHole(i, e.Seats[seat].Hole))
	}

	r.hand = hand
	r.number = e.Number
}

func (r *Recorder) potAwarded(e match.PotAwardedEvent) {
	if r.hand == nil {
		return
	}
	// Each contender shows once, on the first pot they are eligible for
	for _, h := range e.Ranked {
		action := phh.ShowHand(r.index[h.Seat], h.Hole)
		if !slices.Contains(r.hand.Actions, action) {
			r.hand.Actions = append(r.hand.Actions, action)
		}
	}
	for _, p := range e.Payouts {
		r.hand.Winnings[r.index[p.Seat]] += p.Amount
	}
}

func (r *Recorder) finishHand(e match.HandEndEvent) {
	hand := r.hand
	if hand == nil {
		return
	}
	r.hand = nil

	for _, s := range e.Seats {
		hand.FinishingStacks[r.index[s.Seat]] = s.Stack
	}
	hand.PopulateTime()

	path := filepath.Join(r.dir, r.matchID, fmt.Sprintf("%d.phh", r.number))
	if err := r.write(path, hand); err != nil {
		r.logger.Error("Failed to save hand history", "path", path, "error", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.written++
	r.logger.Debug("Saved hand history", "path", path)
}

func (r *Recorder) write(path string, hand *phh.HandHistory) error {
	data, err := phh.EncodeToBytes(hand)
	if err != nil {
		return fmt.Errorf("encoding hand %s: %w", hand.HandID, err)
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
