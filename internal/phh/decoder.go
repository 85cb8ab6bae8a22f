package phh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-cli/internal/deck"
)

// ErrInvalidAction is returned for action strings that cannot be parsed
var ErrInvalidAction = errors.New("phh: invalid action")

// Action codes used in the actions list
const (
	CodeDealHole  = "dh"
	CodeDealBoard = "db"
	CodeFold      = "f"
	CodeCheckCall = "cc"
	CodeBetRaise  = "cbr"
	CodeShow      = "sm"
)

// Dealer is the Player value of dealer actions
const Dealer = -1

// Action is one parsed entry of the actions list
type Action struct {
	Player int // zero-based player index, or Dealer
	Code   string
	Cards  []deck.Card
	Amount int // total for cbr
}

// Decode reads a PHH TOML document
func Decode(r io.Reader) (*HandHistory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var hand HandHistory
	if _, err := toml.Decode(string(data), &hand); err != nil {
		return nil, fmt.Errorf("phh: decoding: %w", err)
	}
	hand.parseTime()
	return &hand, nil
}

// DecodeFile reads the PHH file at path
func DecodeFile(path string) (*HandHistory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hand, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hand, nil
}

// parseTime sets Timestamp from the date and time fields when present
func (h *HandHistory) parseTime() {
	if h.Year == 0 || h.Time == "" {
		return
	}
	clock, err := time.Parse("15:04:05", h.Time)
	if err != nil {
		return
	}
	loc := time.UTC
	if h.TimeZone != "" && h.TimeZone != "UTC" {
		if l, err := time.LoadLocation(h.TimeZone); err == nil {
			loc = l
		}
	}
	h.Timestamp = time.Date(h.Year, time.Month(h.Month), h.Day,
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

// ParseAction parses an entry such as "d dh p1 AhTd", "p2 cbr 60" or "p1 sm AhTd".
// Comment entries (starting with "#") return ok false.
func ParseAction(s string) (action Action, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return Action{}, false, nil
	}
	if i := strings.Index(s, " #"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}

	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Action{}, false, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}

	if fields[0] == "d" {
		action.Player = Dealer
		action.Code = fields[1]
		switch {
		case action.Code == CodeDealHole && len(fields) == 4:
			if action.Player, err = parsePlayerRef(fields[2]); err != nil {
				return Action{}, false, err
			}
			action.Cards, err = deck.ParseCards(fields[3])
		case action.Code == CodeDealBoard && len(fields) == 3:
			action.Cards, err = deck.ParseCards(fields[2])
		default:
			return Action{}, false, fmt.Errorf("%w: %q", ErrInvalidAction, s)
		}
		if err != nil {
			return Action{}, false, fmt.Errorf("%w: %q: %v", ErrInvalidAction, s, err)
		}
		return action, true, nil
	}

	if action.Player, err = parsePlayerRef(fields[0]); err != nil {
		return Action{}, false, err
	}
	action.Code = fields[1]
	switch {
	case (action.Code == CodeFold || action.Code == CodeCheckCall) && len(fields) == 2:
	case action.Code == CodeBetRaise && len(fields) == 3:
		if action.Amount, err = strconv.Atoi(fields[2]); err != nil || action.Amount <= 0 {
			return Action{}, false, fmt.Errorf("%w: bad amount in %q", ErrInvalidAction, s)
		}
	case action.Code == CodeShow && len(fields) == 3:
		if action.Cards, err = deck.ParseCards(fields[2]); err != nil {
			return Action{}, false, fmt.Errorf("%w: %q: %v", ErrInvalidAction, s, err)
		}
	default:
		return Action{}, false, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
	return action, true, nil
}

func parsePlayerRef(ref string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(ref, "p"))
	if err != nil || !strings.HasPrefix(ref, "p") || n < 1 {
		return 0, fmt.Errorf("%w: bad player %q", ErrInvalidAction, ref)
	}
	return n - 1, nil
}
