package match

import (
	"time"

	"github.com/lox/holdem-cli/internal/deck"
	"github.com/lox/holdem-cli/internal/evaluator"
	"github.com/lox/holdem-cli/internal/game"
)

// EventType identifies a match event
type EventType string

const (
	EventTypeMatchStart   EventType = "match_start"
	EventTypeBlinds       EventType = "blinds"
	EventTypeHandStart    EventType = "hand_start"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeSeatSkipped  EventType = "seat_skipped"
	EventTypeNoBetting    EventType = "no_betting"
	EventTypePotAwarded   EventType = "pot_awarded"
	EventTypeEliminated   EventType = "eliminated"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeMatchEnd     EventType = "match_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything published while a match runs
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// SeatInfo is a copy of one seat taken when an event is published
type SeatInfo struct {
	Seat     int
	PlayerID int
	Stack    int
	Action   int
	Hole     []deck.Card
}

// MatchStartEvent is published once before the first hand
type MatchStartEvent struct {
	MatchID  string
	Seed     int64
	Players  []SeatInfo
	BigBlind int
	At       time.Time
}

func (e MatchStartEvent) EventType() EventType { return EventTypeMatchStart }
func (e MatchStartEvent) Timestamp() time.Time { return e.At }

// BlindsEvent is published when the blind timer is (re)started or the blinds
// stop increasing
type BlindsEvent struct {
	Round     int
	BigBlind  int
	Raised    bool
	MaxedOut  bool
	Remaining time.Duration
	At        time.Time
}

func (e BlindsEvent) EventType() EventType { return EventTypeBlinds }
func (e BlindsEvent) Timestamp() time.Time { return e.At }

// HandStartEvent is published after blinds are posted and hole cards dealt
type HandStartEvent struct {
	MatchID        string
	HandID         string
	Number         int
	Round          int
	BigBlind       int
	Remaining      time.Duration
	Seats          []SeatInfo
	Buttons        []int
	SmallBlindSeat int
	BigBlindSeat   int
	SmallBlind     int // chips actually posted
	BigBlindPosted int
	At             time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.At }

// StreetChangeEvent is published when board cards are turned
type StreetChangeEvent struct {
	HandID string
	Street Street
	Cards  []deck.Card // turned this street
	Board  []deck.Card
	Pots   []game.Pot
	At     time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.At }

// PlayerActionEvent is published after a move is applied
type PlayerActionEvent struct {
	HandID    string
	Street    Street
	Seat      int
	PlayerID  int
	Move      game.Move
	Amount    int // requested total action for bets and raises
	Committed int // chips moved from stack after clamping
	Action    int // street action after the move
	Stack     int
	AllIn     bool
	At        time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.At }

// SeatSkippedEvent is published for an all-in seat with no moves
type SeatSkippedEvent struct {
	HandID   string
	Street   Street
	Seat     int
	PlayerID int
	At       time.Time
}

func (e SeatSkippedEvent) EventType() EventType { return EventTypeSeatSkipped }
func (e SeatSkippedEvent) Timestamp() time.Time { return e.At }

// NoBettingEvent is published when a street has fewer than two players able to bet
type NoBettingEvent struct {
	HandID string
	Street Street
	At     time.Time
}

func (e NoBettingEvent) EventType() EventType { return EventTypeNoBetting }
func (e NoBettingEvent) Timestamp() time.Time { return e.At }

// HandResult is one contender's cards and best hand at showdown
type HandResult struct {
	Seat     int
	PlayerID int
	Hole     []deck.Card
	Hand     evaluator.Hand
}

// Payout is chips paid to one player
type Payout struct {
	Seat     int
	PlayerID int
	Amount   int
}

// PotAwardedEvent is published for every pot paid out at the end of a hand
type PotAwardedEvent struct {
	HandID   string
	Pot      int
	PotCount int
	Amount   int
	Showdown bool
	Ranked   []HandResult // best first, empty when won uncontested
	Winners  []int
	Payouts  []Payout
	At       time.Time
}

func (e PotAwardedEvent) EventType() EventType { return EventTypePotAwarded }
func (e PotAwardedEvent) Timestamp() time.Time { return e.At }

// EliminatedEvent is published for each player knocked out
type EliminatedEvent struct {
	PlayerID int
	Place    int
	At       time.Time
}

func (e EliminatedEvent) EventType() EventType { return EventTypeEliminated }
func (e EliminatedEvent) Timestamp() time.Time { return e.At }

// HandEndEvent is published once all pots are paid
type HandEndEvent struct {
	HandID string
	Number int
	Board  []deck.Card
	Seats  []SeatInfo
	At     time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.At }

// MatchEndEvent is published when one player holds every chip
type MatchEndEvent struct {
	MatchID  string
	WinnerID int
	Hands    int
	At       time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.At }

// EventSubscriber can subscribe to match events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
