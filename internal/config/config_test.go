package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	setup, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), setup)
	assert.NoError(t, setup.Validate())
}

func TestLoadGameBlock(t *testing.T) {
	path := writeConfig(t, `
game {
  players        = 4
  starting_stack = 500
  big_blind      = 10
  blind_interval = "5m"
  blind_scheme   = "doubling"
  seed           = 42
}
`)

	setup, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, setup.Players)
	assert.Equal(t, 500, setup.StartingStack)
	assert.Equal(t, 10, setup.BigBlind)
	assert.Equal(t, 5*time.Minute, setup.BlindInterval)
	assert.Equal(t, SchemeDoubling, setup.BlindScheme)
	assert.Equal(t, int64(42), setup.Seed)
	assert.Nil(t, setup.Resume)
	assert.NoError(t, setup.Validate())
}

func TestLoadPartialGameBlockKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  players = 3
}
`)

	setup, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, setup.Players)
	assert.Equal(t, 1000, setup.StartingStack)
	assert.Equal(t, SchemeAdditive, setup.BlindScheme)
}

func TestLoadResumeBlock(t *testing.T) {
	path := writeConfig(t, `
game {
  players        = 3
  starting_stack = 100
  big_blind      = 10
}

resume {
  round     = 3
  remaining = "90s"
  stacks    = [120, 180]
  dealer    = 1
  ids       = [3, 1]
}
`)

	setup, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, setup.Resume)
	assert.Equal(t, 3, setup.Resume.Round)
	assert.Equal(t, 90*time.Second, setup.Resume.Remaining)
	assert.Equal(t, []int{120, 180}, setup.Resume.Stacks)
	assert.Equal(t, 1, setup.Resume.Dealer)
	assert.Equal(t, []int{3, 1}, setup.Resume.IDs)
	assert.NoError(t, setup.Validate())
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := Load(writeConfig(t, `game {`))
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
game {
  blind_interval = "soon"
}
`))
		assert.ErrorContains(t, err, "blind_interval")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Setup)
		errMsg string
	}{
		{"too few players", func(s *Setup) { s.Players = 1 }, "players"},
		{"too many players", func(s *Setup) { s.Players = 13 }, "players"},
		{"small stack", func(s *Setup) { s.StartingStack = 3; s.BigBlind = 2 }, "starting stack"},
		{"zero big blind", func(s *Setup) { s.BigBlind = 0 }, "big blind"},
		{"big blind above stack", func(s *Setup) { s.BigBlind = 1001 }, "big blind"},
		{"zero interval", func(s *Setup) { s.BlindInterval = 0 }, "blind interval"},
		{"unknown scheme", func(s *Setup) { s.BlindScheme = "tripling" }, "blind scheme"},
		{"resume round", func(s *Setup) {
			s.Resume = &Resume{Round: 0, Stacks: []int{3000, 3000}}
		}, "round"},
		{"resume chips", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{100, 100}}
		}, "expected 6000"},
		{"resume dealer", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{3000, 3000}, Dealer: 2}
		}, "dealer"},
		{"resume zero stack", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{6000, 0}}
		}, "positive"},
		{"resume remaining", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{3000, 3000}, Remaining: time.Hour}
		}, "remaining"},
		{"resume id count", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{3000, 3000}, IDs: []int{1}}
		}, "ids"},
		{"resume duplicate id", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{3000, 3000}, IDs: []int{4, 4}}
		}, "duplicate"},
		{"resume id range", func(s *Setup) {
			s.Resume = &Resume{Round: 1, Stacks: []int{3000, 3000}, IDs: []int{1, 7}}
		}, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := Default()
			tt.modify(&setup)
			err := setup.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("valid resume", func(t *testing.T) {
		setup := Default()
		setup.Resume = &Resume{Round: 2, Stacks: []int{1000, 2000, 3000}, Dealer: 2, Remaining: time.Minute}
		assert.NoError(t, setup.Validate())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	setup := Setup{
		Players:       4,
		StartingStack: 500,
		BigBlind:      10,
		BlindInterval: 5 * time.Minute,
		BlindScheme:   SchemeDoubling,
		Seed:          99,
		Resume: &Resume{
			Round:     3,
			Remaining: 95 * time.Second,
			Stacks:    []int{900, 300, 800},
			Dealer:    0,
			IDs:       []int{4, 1, 2},
		},
	}

	path := filepath.Join(t.TempDir(), "saves", "holdem.hcl")
	require.NoError(t, Save(path, setup))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, setup, loaded)
	assert.NoError(t, loaded.Validate())
}

func TestSaveWithoutResume(t *testing.T) {
	setup := Default()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, Save(path, setup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "game {")
	assert.NotContains(t, string(data), "resume")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, setup, loaded)
}

func TestSaveRejectsInvalidSetup(t *testing.T) {
	setup := Default()
	setup.Resume = &Resume{Round: 1, Stacks: []int{1, 1}}
	path := filepath.Join(t.TempDir(), "holdem.hcl")

	assert.ErrorContains(t, Save(path, setup), "invalid setup")
	assert.NoFileExists(t, path)
}
