package statistics

import (
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/randutil"
)

func TestSampleEmpty(t *testing.T) {
	var s Sample
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.Zero(t, s.Min())
	assert.Zero(t, s.Max())
}

func TestSampleValues(t *testing.T) {
	var s Sample
	for _, v := range []float64{4, 1, 3, 2} {
		s.Add(v)
	}

	assert.Equal(t, 4, s.Len())
	assert.InDelta(t, 2.5, s.Mean(), 1e-9)
	assert.InDelta(t, 5.0/3.0, s.Variance(), 1e-9)
	assert.InDelta(t, 2.5, s.Median(), 1e-9)
	assert.InDelta(t, 1.0, s.Percentile(0), 1e-9)
	assert.InDelta(t, 4.0, s.Percentile(1), 1e-9)
	assert.InDelta(t, 3.25, s.Percentile(0.75), 1e-9)
	assert.Equal(t, 1.0, s.Min())
	assert.Equal(t, 4.0, s.Max())

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, s.Mean())
	assert.Greater(t, hi, s.Mean())

	var other Sample
	other.Add(10)
	s.Merge(&other)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 10.0, s.Max())
}

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()
	events := []match.Event{
		match.HandStartEvent{BigBlind: 20},
		match.PotAwardedEvent{Pot: 0, Amount: 60, Winners: []int{1}},
		match.HandStartEvent{BigBlind: 20},
		match.PotAwardedEvent{Pot: 0, Amount: 200, Showdown: true, Winners: []int{0, 2}},
		match.PotAwardedEvent{Pot: 1, Amount: 100, Showdown: true, Winners: []int{2}},
		match.PotAwardedEvent{Pot: 2, Amount: 0, Showdown: true},
		match.EliminatedEvent{PlayerID: 4, Place: 3},
	}
	for _, e := range events {
		c.OnEvent(e)
	}

	assert.Equal(t, 2, c.Hands)
	assert.Equal(t, 1, c.Showdowns)
	assert.Equal(t, 1, c.Uncontested)
	assert.Equal(t, 1, c.SidePots)
	assert.Equal(t, 1, c.Splits)
	assert.Equal(t, 1, c.Eliminated)
	assert.InDelta(t, 0.5, c.ShowdownRate(), 1e-9)
	assert.Equal(t, 3, c.PotSizes.Len())
	assert.InDelta(t, 10.0, c.PotSizes.Max(), 1e-9)

	total := NewCollector()
	total.Merge(c)
	total.Merge(c)
	assert.Equal(t, 4, total.Hands)
	assert.Equal(t, 6, total.PotSizes.Len())
}

func TestCollectorOnMatch(t *testing.T) {
	c := NewCollector()
	bus := match.NewEventBus()
	bus.Subscribe(c)

	setup := config.Default()
	setup.Players = 3
	setup.StartingStack = 200
	setup.Seed = 5

	m, err := match.New(match.Options{
		Setup:   setup,
		Default: match.NewRandomAgent(randutil.New(5)),
		Bus:     bus,
		Clock:   quartz.NewMock(t),
	})
	require.NoError(t, err)

	result, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, result.Hands, c.Hands)
	assert.Equal(t, 2, c.Eliminated)
	assert.LessOrEqual(t, c.Showdowns, c.Hands)
	assert.GreaterOrEqual(t, c.PotSizes.Len(), c.Hands)
}
