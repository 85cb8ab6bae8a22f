// Package config holds the persistable game setup and loads it from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	MinPlayers       = 2
	MaxPlayers       = 12
	MinStartingStack = 4
)

// Blind increase schemes understood by the engine
const (
	SchemeAdditive = "additive"
	SchemeDoubling = "doubling"
)

// Schemes lists every supported blind increase scheme
var Schemes = []string{SchemeAdditive, SchemeDoubling}

// Setup is everything needed to start or resume a match. Runtime callbacks
// live in game.Hooks.
type Setup struct {
	Players       int
	StartingStack int
	BigBlind      int
	BlindInterval time.Duration
	BlindScheme   string
	Seed          int64
	Resume        *Resume
}

// Resume carries the state of a match continued from an earlier session
type Resume struct {
	Round     int           // blind level reached, starting at 1
	Remaining time.Duration // time left on the blind timer
	Stacks    []int         // surviving stacks in seat order
	Dealer    int           // index into Stacks of the dealer
	IDs       []int         // player IDs matching Stacks; empty numbers them 1..n
}

// File is the on-disk HCL layout
type File struct {
	Game   *GameBlock   `hcl:"game,block"`
	Resume *ResumeBlock `hcl:"resume,block"`
}

// GameBlock is the `game { ... }` block
type GameBlock struct {
	Players       int    `hcl:"players,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	BlindInterval string `hcl:"blind_interval,optional"`
	BlindScheme   string `hcl:"blind_scheme,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// ResumeBlock is the `resume { ... }` block
type ResumeBlock struct {
	Round     int    `hcl:"round"`
	Remaining string `hcl:"remaining,optional"`
	Stacks    []int  `hcl:"stacks"`
	Dealer    int    `hcl:"dealer,optional"`
	IDs       []int  `hcl:"ids,optional"`
}

// Default returns the setup used when no config file exists
func Default() Setup {
	return Setup{
		Players:       6,
		StartingStack: 1000,
		BigBlind:      20,
		BlindInterval: 10 * time.Minute,
		BlindScheme:   SchemeAdditive,
	}
}

// Load reads a setup from an HCL file. A missing file yields Default().
func Load(filename string) (Setup, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Setup{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return Setup{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return f.Setup()
}

// Setup converts the decoded file into a Setup, filling defaults for missing values
func (f File) Setup() (Setup, error) {
	setup := Default()

	if g := f.Game; g != nil {
		if g.Players != 0 {
			setup.Players = g.Players
		}
		if g.StartingStack != 0 {
			setup.StartingStack = g.StartingStack
		}
		if g.BigBlind != 0 {
			setup.BigBlind = g.BigBlind
		}
		if g.BlindInterval != "" {
			d, err := time.ParseDuration(g.BlindInterval)
			if err != nil {
				return Setup{}, fmt.Errorf("invalid blind_interval %q: %w", g.BlindInterval, err)
			}
			setup.BlindInterval = d
		}
		if g.BlindScheme != "" {
			setup.BlindScheme = g.BlindScheme
		}
		setup.Seed = g.Seed
	}

	if r := f.Resume; r != nil {
		resume := &Resume{
			Round:  r.Round,
			Stacks: r.Stacks,
			Dealer: r.Dealer,
			IDs:    r.IDs,
		}
		if r.Remaining != "" {
			d, err := time.ParseDuration(r.Remaining)
			if err != nil {
				return Setup{}, fmt.Errorf("invalid resume remaining %q: %w", r.Remaining, err)
			}
			resume.Remaining = d
		}
		setup.Resume = resume
	}

	return setup, nil
}

// Validate checks the setup ranges
func (s Setup) Validate() error {
	if s.Players < MinPlayers || s.Players > MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", MinPlayers, MaxPlayers, s.Players)
	}
	if s.StartingStack < MinStartingStack {
		return fmt.Errorf("starting stack must be at least %d, got %d", MinStartingStack, s.StartingStack)
	}
	if s.BigBlind <= 0 || s.BigBlind > s.StartingStack {
		return fmt.Errorf("big blind must be between 1 and the starting stack (%d), got %d", s.StartingStack, s.BigBlind)
	}
	if s.BlindInterval <= 0 {
		return fmt.Errorf("blind interval must be positive, got %s", s.BlindInterval)
	}

	validScheme := false
	for _, scheme := range Schemes {
		if s.BlindScheme == scheme {
			validScheme = true
			break
		}
	}
	if !validScheme {
		return fmt.Errorf("invalid blind scheme %q", s.BlindScheme)
	}

	if s.Resume != nil {
		if err := s.Resume.validate(s); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
	}

	return nil
}

func (r *Resume) validate(s Setup) error {
	if r.Round < 1 {
		return fmt.Errorf("round must be at least 1, got %d", r.Round)
	}
	if r.Remaining < 0 || r.Remaining > s.BlindInterval {
		return fmt.Errorf("remaining time %s outside blind interval %s", r.Remaining, s.BlindInterval)
	}
	if len(r.Stacks) < MinPlayers || len(r.Stacks) > s.Players {
		return fmt.Errorf("need between %d and %d stacks, got %d", MinPlayers, s.Players, len(r.Stacks))
	}

	total := 0
	for i, stack := range r.Stacks {
		if stack <= 0 {
			return fmt.Errorf("stack %d must be positive, got %d", i, stack)
		}
		total += stack
	}
	if want := s.Players * s.StartingStack; total != want {
		return fmt.Errorf("stacks total %d chips, expected %d", total, want)
	}

	if r.Dealer < 0 || r.Dealer >= len(r.Stacks) {
		return fmt.Errorf("dealer %d out of range", r.Dealer)
	}

	if len(r.IDs) == 0 {
		return nil
	}
	if len(r.IDs) != len(r.Stacks) {
		return fmt.Errorf("got %d ids for %d stacks", len(r.IDs), len(r.Stacks))
	}
	seen := make(map[int]bool, len(r.IDs))
	for _, id := range r.IDs {
		if id < 1 || id > s.Players {
			return fmt.Errorf("player id %d out of range", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate player id %d", id)
		}
		seen[id] = true
	}
	return nil
}
