// Package match sequences the streets of each hand, drives the engine and
// publishes events for the display and the hand history.
package match

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/holdem-cli/internal/blindtimer"
	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/game"
	"github.com/lox/holdem-cli/internal/randutil"
)

// HoleCards is how many cards each player is dealt
const HoleCards = 2

// Options configures a match
type Options struct {
	Setup config.Setup
	// Agents maps player IDs to the agent deciding for them; players without
	// an entry use Default.
	Agents  map[int]Agent
	Default Agent
	Hooks   game.Hooks
	Bus     EventBus
	Clock   quartz.Clock
	Logger  *log.Logger
	// MaxHands stops the match after that many hands; 0 plays to a winner
	MaxHands int
}

// Placing is a player's finishing position
type Placing struct {
	PlayerID int
	Place    int
}

// Result summarises a finished (or stopped) match
type Result struct {
	MatchID  string
	Seed     int64
	Hands    int
	WinnerID int // 0 if stopped before a winner
	Places   []Placing
}

// Match plays one tournament from setup to a single winner
type Match struct {
	id       string
	seed     int64
	engine   *game.Engine
	timer    *blindtimer.Timer
	agents   map[int]Agent
	fallback Agent
	bus      EventBus
	clock    quartz.Clock
	logger   *log.Logger
	maxHands int

	timerStarted bool
	maxedOut     bool
	maxAnnounced bool

	handID string
	hands  int
	places []Placing
	// between-hands state, taken before each hand is dealt
	saved config.Resume
}

// New validates the setup and seats the players
func New(opts Options) (*Match, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Bus == nil {
		opts.Bus = NewEventBus()
	}

	seed := opts.Setup.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating match id: %w", err)
	}
	logger := opts.Logger.With("match", id.String())

	engine, err := game.NewEngine(opts.Setup, opts.Hooks, randutil.New(seed), logger)
	if err != nil {
		return nil, err
	}

	for _, p := range engine.Players() {
		if opts.Agents[p.ID] == nil && opts.Default == nil {
			return nil, fmt.Errorf("no agent for %s", p)
		}
	}

	m := &Match{
		id:       id.String(),
		seed:     seed,
		engine:   engine,
		timer:    blindtimer.New(opts.Clock, opts.Setup.BlindInterval, logger),
		agents:   opts.Agents,
		fallback: opts.Default,
		bus:      opts.Bus,
		clock:    opts.Clock,
		logger:   logger,
		maxHands: opts.MaxHands,
	}

	if r := opts.Setup.Resume; r != nil && r.Remaining > 0 {
		m.timer.StartWith(r.Remaining)
		m.timerStarted = true
	}
	m.maxedOut = engine.BlindsMaxedOut()
	m.saved = m.snapshot()

	return m, nil
}

// ID returns the match identifier
func (m *Match) ID() string {
	return m.id
}

// Engine exposes the underlying engine, mainly for tests and summaries
func (m *Match) Engine() *game.Engine {
	return m.engine
}

// Run plays hands until one player has every chip, MaxHands is reached, ctx
// is cancelled or an agent fails (ErrQuit included).
func (m *Match) Run(ctx context.Context) (Result, error) {
	m.publish(MatchStartEvent{
		MatchID:  m.id,
		Seed:     m.seed,
		Players:  m.seats(false),
		BigBlind: m.engine.BigBlind(),
		At:       m.clock.Now(),
	})
	m.logger.Info("Match started", "players", len(m.engine.Players()), "seed", m.seed)

	for {
		if err := ctx.Err(); err != nil {
			return m.result(), err
		}
		if m.maxHands > 0 && m.hands >= m.maxHands {
			m.logger.Info("Hand limit reached", "hands", m.hands)
			return m.result(), nil
		}

		m.manageTimer()
		m.saved = m.snapshot()
		if err := m.playHand(ctx); err != nil {
			return m.result(), err
		}

		for _, out := range m.engine.EliminateBusted() {
			m.places = append(m.places, Placing{PlayerID: out.Player.ID, Place: out.Place})
			m.publish(EliminatedEvent{PlayerID: out.Player.ID, Place: out.Place, At: m.clock.Now()})
		}

		if winner := m.engine.MatchWinner(); winner != nil {
			m.places = append(m.places, Placing{PlayerID: winner.ID, Place: 1})
			m.publish(MatchEndEvent{MatchID: m.id, WinnerID: winner.ID, Hands: m.hands, At: m.clock.Now()})
			m.logger.Info("Match won", "winner", winner, "hands", m.hands)
			return m.result(), nil
		}
		m.engine.RotateDealer()
		m.saved = m.snapshot()
	}
}

// Resume returns the state needed to continue the match in a later session.
// A hand interrupted part way through is discarded: stacks are as they stood
// before it was dealt, with seat 0 as the dealer.
func (m *Match) Resume() config.Resume {
	r := m.saved
	r.Stacks = slices.Clone(r.Stacks)
	r.IDs = slices.Clone(r.IDs)
	r.Remaining = m.timer.Remaining()
	if r.Remaining == 0 && m.timerStarted && !m.maxedOut {
		// The level ran out; the next session starts on the raised level
		r.Round++
	}
	return r
}

func (m *Match) snapshot() config.Resume {
	players := m.engine.Players()
	r := config.Resume{
		Round:  m.engine.Round(),
		Stacks: make([]int, len(players)),
		IDs:    make([]int, len(players)),
		Dealer: game.DealerSeat,
	}
	for i, p := range players {
		r.Stacks[i] = p.Stack
		r.IDs[i] = p.ID
	}
	return r
}

func (m *Match) result() Result {
	r := Result{
		MatchID: m.id,
		Seed:    m.seed,
		Hands:   m.hands,
		Places:  m.places,
	}
	if winner := m.engine.MatchWinner(); winner != nil {
		r.WinnerID = winner.ID
	}
	return r
}

// manageTimer runs between hands. When the level has run out it raises the
// blinds (never before the first level) and starts the next level, until the
// blinds reach their cap.
func (m *Match) manageTimer() {
	if m.timer.Remaining() > 0 {
		return
	}

	if m.maxedOut {
		m.timer.Stop()
		if !m.maxAnnounced {
			m.maxAnnounced = true
			m.publish(BlindsEvent{Round: m.engine.Round(), BigBlind: m.engine.BigBlind(), MaxedOut: true, At: m.clock.Now()})
		}
		return
	}

	raised := false
	if m.timerStarted {
		m.engine.RaiseBlinds()
		raised = true
	}
	m.maxedOut = m.engine.BlindsMaxedOut()
	m.timer.Start()
	m.timerStarted = true

	m.publish(BlindsEvent{
		Round:     m.engine.Round(),
		BigBlind:  m.engine.BigBlind(),
		Raised:    raised,
		MaxedOut:  m.maxedOut,
		Remaining: m.timer.Remaining(),
		At:        m.clock.Now(),
	})
}

func (m *Match) playHand(ctx context.Context) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating hand id: %w", err)
	}
	m.handID = id.String()
	m.hands++

	e := m.engine
	e.StartHand()
	small, big := e.PostBlinds()
	if _, err := e.DealHoleCards(HoleCards); err != nil {
		return err
	}

	sbSeat, bbSeat := e.BlindPositions()
	m.publish(HandStartEvent{
		MatchID:        m.id,
		HandID:         m.handID,
		Number:         m.hands,
		Round:          e.Round(),
		BigBlind:       e.BigBlind(),
		Remaining:      m.timer.Remaining(),
		Seats:          m.seats(true),
		Buttons:        e.ButtonPositions(),
		SmallBlindSeat: sbSeat,
		BigBlindSeat:   bbSeat,
		SmallBlind:     small,
		BigBlindPosted: big,
		At:             m.clock.Now(),
	})
	m.logger.Info("Hand started", "hand", m.hands, "big_blind", e.BigBlind(), "dealer", e.Players()[game.DealerSeat])

	for street := Preflop; street <= River; street++ {
		if street != Preflop {
			cards, err := e.FlipBoardCards(boardCards[street])
			if err != nil {
				return err
			}
			m.publish(StreetChangeEvent{
				HandID: m.handID,
				Street: street,
				Cards:  cards,
				Board:  e.Board(),
				Pots:   e.Pots(),
				At:     m.clock.Now(),
			})
		}

		if e.BettingOpen(street == Preflop) {
			if err := m.bettingRound(ctx, street); err != nil {
				return err
			}
		} else {
			m.publish(NoBettingEvent{HandID: m.handID, Street: street, At: m.clock.Now()})
		}

		if err := e.SettleStreet(); err != nil {
			return err
		}
		if e.HandOver() {
			break
		}
	}

	if err := m.awardPots(); err != nil {
		return err
	}

	m.publish(HandEndEvent{
		HandID: m.handID,
		Number: m.hands,
		Board:  e.Board(),
		Seats:  m.seats(false),
		At:     m.clock.Now(),
	})
	return nil
}

func (m *Match) bettingRound(ctx context.Context, street Street) error {
	e := m.engine
	preflop := street == Preflop
	seat := e.FirstToAct(preflop)
	e.InitBettingRound()

	for {
		p := e.Players()[seat]
		moves, minimum, err := e.LegalMoves(seat, preflop)
		if err != nil {
			return err
		}

		if len(moves) == 0 {
			if err := e.SkipSeat(seat); err != nil {
				return err
			}
			m.publish(SeatSkippedEvent{HandID: m.handID, Street: street, Seat: seat, PlayerID: p.ID, At: m.clock.Now()})
		} else {
			view := TurnView{
				HandID:    m.handID,
				Street:    street,
				Seat:      seat,
				PlayerID:  p.ID,
				Stack:     p.Stack,
				Action:    p.Action,
				Hole:      append([]deck.Card(nil), p.Hole...),
				Board:     e.Board(),
				Moves:     moves,
				Minimum:   minimum,
				MaxAction: e.MaxAction(),
				BigBlind:  e.BigBlind(),
				Pots:      e.Pots(),
				Pending:   e.PendingAction(),
			}

			decision, err := m.agentFor(p.ID).Decide(ctx, view)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			committed, err := e.ApplyMove(seat, decision.Move, decision.Amount)
			if err != nil {
				return err
			}

			m.publish(PlayerActionEvent{
				HandID:    m.handID,
				Street:    street,
				Seat:      seat,
				PlayerID:  p.ID,
				Move:      decision.Move,
				Amount:    decision.Amount,
				Committed: committed,
				Action:    p.Action,
				Stack:     p.Stack,
				AllIn:     p.AllIn() && decision.Move != game.Fold,
				At:        m.clock.Now(),
			})
		}

		if e.RoundOver() {
			return nil
		}
		seat = e.NextSeat(seat, true)
	}
}

func (m *Match) awardPots() error {
	e := m.engine
	pots := e.Pots()
	foldOut := e.HandOver()

	for i, pot := range pots {
		event := PotAwardedEvent{
			HandID:   m.handID,
			Pot:      i,
			PotCount: len(pots),
			Amount:   pot.Amount,
			Showdown: !foldOut,
			At:       m.clock.Now(),
		}

		if foldOut {
			payouts, err := e.AwardFold(i)
			if err != nil {
				return err
			}
			for _, p := range payouts {
				event.Winners = append(event.Winners, p.Seat)
				event.Payouts = append(event.Payouts, Payout{Seat: p.Seat, PlayerID: p.Player.ID, Amount: p.Amount})
			}
		} else {
			sd, err := e.ResolveShowdown(i)
			if err != nil {
				return err
			}
			for _, r := range sd.Ranked {
				event.Ranked = append(event.Ranked, HandResult{
					Seat:     r.Seat,
					PlayerID: r.Player.ID,
					Hole:     append([]deck.Card(nil), r.Player.Hole...),
					Hand:     r.Hand,
				})
			}
			event.Winners = sd.Winners
			for _, p := range sd.Payouts {
				event.Payouts = append(event.Payouts, Payout{Seat: p.Seat, PlayerID: p.Player.ID, Amount: p.Amount})
			}
		}

		m.publish(event)
	}
	return nil
}

func (m *Match) agentFor(playerID int) Agent {
	if a := m.agents[playerID]; a != nil {
		return a
	}
	return m.fallback
}

// seats copies the roster; hole cards only when withHole is set
func (m *Match) seats(withHole bool) []SeatInfo {
	players := m.engine.Players()
	out := make([]SeatInfo, len(players))
	for i, p := range players {
		out[i] = SeatInfo{Seat: i, PlayerID: p.ID, Stack: p.Stack, Action: p.Action}
		if withHole {
			out[i].Hole = append([]deck.Card(nil), p.Hole...)
		}
	}
	return out
}

func (m *Match) publish(event Event) {
	m.bus.Publish(event)
}
