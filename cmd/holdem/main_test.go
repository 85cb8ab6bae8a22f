package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/history"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/randutil"
	"github.com/lox/holdem-cli/internal/statistics"
)

func TestSetupFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
game {
  players        = 4
  starting_stack = 500
  big_blind      = 10
}
`), 0o644))

	t.Run("file values", func(t *testing.T) {
		setup, err := SetupFlags{Config: path}.setup()
		require.NoError(t, err)
		assert.Equal(t, 4, setup.Players)
		assert.Equal(t, 500, setup.StartingStack)
		assert.Equal(t, 10, setup.BigBlind)
		assert.Equal(t, config.SchemeAdditive, setup.BlindScheme)
	})

	t.Run("flags override", func(t *testing.T) {
		setup, err := SetupFlags{
			Config:   path,
			Players:  3,
			Interval: 2 * time.Minute,
			Scheme:   config.SchemeDoubling,
			Seed:     42,
		}.setup()
		require.NoError(t, err)
		assert.Equal(t, 3, setup.Players)
		assert.Equal(t, 500, setup.StartingStack)
		assert.Equal(t, 2*time.Minute, setup.BlindInterval)
		assert.Equal(t, config.SchemeDoubling, setup.BlindScheme)
		assert.Equal(t, int64(42), setup.Seed)
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		setup, err := SetupFlags{Config: filepath.Join(dir, "nope.hcl")}.setup()
		require.NoError(t, err)
		assert.Equal(t, config.Default(), setup)
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := SetupFlags{Config: path, Players: 20}.setup()
		assert.ErrorContains(t, err, "invalid game setup")
	})
}

func TestSummarize(t *testing.T) {
	pots := statistics.NewCollector()
	pots.OnEvent(match.HandStartEvent{BigBlind: 10})
	pots.OnEvent(match.PotAwardedEvent{Amount: 40, Showdown: true, Winners: []int{1}})

	s := summarize([]match.Result{
		{Hands: 120, WinnerID: 2},
		{Hands: 80, WinnerID: 2},
		{Hands: 300},
		{Hands: 95, WinnerID: 5},
	}, []*statistics.Collector{pots, pots})

	assert.Equal(t, 4, s.Matches)
	assert.Equal(t, 3, s.Finished)
	assert.Equal(t, 1, s.Capped)
	assert.InDelta(t, 148.75, s.Hands.Mean(), 1e-9)
	assert.Equal(t, 80.0, s.Hands.Min())
	assert.Equal(t, 300.0, s.Hands.Max())
	assert.Equal(t, map[int]int{2: 2, 5: 1}, s.Wins)
	assert.Equal(t, 2, s.Pots.Hands)
	assert.Equal(t, 2, s.Pots.Showdowns)

	var buf bytes.Buffer
	writeReport(&buf, s)
	out := buf.String()
	assert.Contains(t, out, "Simulation results")
	assert.Contains(t, out, "148.8 avg, 108 median, 80-300")
	assert.Contains(t, out, "2 of 2 hands (100.0%)")
	assert.Contains(t, out, "4.0 avg")
	assert.Contains(t, out, "P2 2, P5 1")
}

type quitAgent struct{}

func (quitAgent) Decide(context.Context, match.TurnView) (match.Decision, error) {
	return match.Decision{}, match.ErrQuit
}

func TestSaveGame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	setup := config.Default()
	setup.Players = 3
	setup.Seed = 11

	m, err := match.New(match.Options{Setup: setup, Default: quitAgent{}, Clock: quartz.NewMock(t)})
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, match.ErrQuit)

	require.NoError(t, saveGame(path, setup, m))

	loaded, err := SetupFlags{Config: path}.setup()
	require.NoError(t, err)
	require.NotNil(t, loaded.Resume)
	assert.Equal(t, 1, loaded.Resume.Round)
	assert.Equal(t, []int{1000, 1000, 1000}, loaded.Resume.Stacks)
	assert.ElementsMatch(t, []int{1, 2, 3}, loaded.Resume.IDs)
	assert.Equal(t, int64(11), loaded.Seed)

	resumed, err := match.New(match.Options{Setup: loaded, Default: quitAgent{}, Clock: quartz.NewMock(t)})
	require.NoError(t, err)
	for i, p := range resumed.Engine().Players() {
		assert.Equal(t, loaded.Resume.IDs[i], p.ID)
	}
	assert.Equal(t, m.Engine().Players()[0].ID, resumed.Engine().Players()[0].ID, "same dealer")
	assert.Equal(t, setup.BigBlind, resumed.Engine().BigBlind())
}

func TestReplayDir(t *testing.T) {
	dir := t.TempDir()
	bus := match.NewEventBus()
	bus.Subscribe(history.NewRecorder(dir, nil))

	setup := config.Default()
	setup.Players = 3
	setup.Seed = 3
	m, err := match.New(match.Options{
		Setup:    setup,
		Default:  match.NewRandomAgent(randutil.New(3)),
		Bus:      bus,
		Clock:    quartz.NewMock(t),
		MaxHands: 3,
	})
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := replayDir(dir, &out, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, out.String(), "Hand #1")
	assert.Contains(t, out.String(), "Hand #3")
	assert.Contains(t, out.String(), "posts big blind")

	_, err = replayDir(t.TempDir(), &out, true)
	assert.ErrorContains(t, err, "no .phh files")
}
