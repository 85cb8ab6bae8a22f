package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-cli/internal/config"
	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/history"
	"github.com/lox/holdem-cli/internal/match"
)

type PlayCmd struct {
	SetupFlags `embed:""`

	HistoryDir string `help:"Save every hand as a PHH file below this directory" type:"path"`
	Save       string `help:"Where to save a stopped game (defaults to --config)" type:"path"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	logger, closeLog, err := globals.openLog("play")
	if err != nil {
		return err
	}
	defer closeLog()

	setup, err := c.setup()
	if err != nil {
		return err
	}

	out := os.Stdout
	bus := match.NewEventBus()
	bus.Subscribe(display.NewRenderer(out, globals.NoColor))

	var recorder *history.Recorder
	if c.HistoryDir != "" {
		recorder = history.NewRecorder(c.HistoryDir, logger)
		bus.Subscribe(recorder)
	}

	m, err := match.New(match.Options{
		Setup:   setup,
		Default: display.NewPrompter(os.Stdin, out, globals.NoColor, logger),
		Bus:     bus,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	savePath := c.Save
	if savePath == "" {
		savePath = c.Config
	}

	result, err := m.Run(ctx)
	switch {
	case errors.Is(err, match.ErrQuit), errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "Game stopped after %d hands.\n", result.Hands)
		if err := saveGame(savePath, setup, m); err != nil {
			return err
		}
		logger.Info("Game saved", "file", savePath)
		fmt.Fprintf(out, "Saved game to %s, run again with --config %s to resume.\n", savePath, savePath)
	case err != nil:
		return err
	case setup.Resume != nil && result.WinnerID != 0:
		// The saved game is finished
		setup.Resume = nil
		if err := config.Save(savePath, setup); err != nil {
			return err
		}
	}

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return fmt.Errorf("saving hand history: %w", err)
		}
		fmt.Fprintf(out, "Saved %d hands to %s\n", recorder.Written(), c.HistoryDir)
	}
	return nil
}

// saveGame writes setup with the match's resume state. A match with fewer
// than two players left has nothing to resume.
func saveGame(filename string, setup config.Setup, m *match.Match) error {
	resume := m.Resume()
	if len(resume.Stacks) < config.MinPlayers {
		return nil
	}
	setup.Resume = &resume
	return config.Save(filename, setup)
}
