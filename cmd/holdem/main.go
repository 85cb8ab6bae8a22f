package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-cli/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	LogFile string `help:"Write logs to this file" default:"holdem.log" type:"path"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colour output"`
}

// SetupFlags override values loaded from the config file when set
type SetupFlags struct {
	Config   string        `short:"c" help:"HCL game config file (missing file means defaults)" default:"holdem.hcl" type:"path"`
	Players  int           `short:"p" help:"Number of players (2-12)"`
	Stack    int           `help:"Starting stack"`
	BigBlind int           `help:"Initial big blind"`
	Interval time.Duration `help:"Time between blind increases, e.g. 10m"`
	Scheme   string        `help:"Blind schedule: additive or doubling"`
	Seed     int64         `help:"Shuffle seed (0 for random)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a hot-seat tournament at this terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play random legal moves for every seat across many matches"`
	Replay   ReplayCmd        `cmd:"" help:"Play back hands saved with --history-dir"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-limit Texas hold'em tournaments in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// setup loads the config file and applies any flags on top
func (f SetupFlags) setup() (config.Setup, error) {
	setup, err := config.Load(f.Config)
	if err != nil {
		return config.Setup{}, err
	}

	if f.Players != 0 {
		setup.Players = f.Players
	}
	if f.Stack != 0 {
		setup.StartingStack = f.Stack
	}
	if f.BigBlind != 0 {
		setup.BigBlind = f.BigBlind
	}
	if f.Interval != 0 {
		setup.BlindInterval = f.Interval
	}
	if f.Scheme != "" {
		setup.BlindScheme = f.Scheme
	}
	if f.Seed != 0 {
		setup.Seed = f.Seed
	}

	if err := setup.Validate(); err != nil {
		return config.Setup{}, fmt.Errorf("invalid game setup: %w", err)
	}
	return setup, nil
}

// openLog creates the file logger; stdout belongs to the game
func (g *Globals) openLog(prefix string) (*log.Logger, func(), error) {
	file, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	return logger, func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}, nil
}
