package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/holdem-cli/internal/display"
	"github.com/lox/holdem-cli/internal/history"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/phh"
)

type ReplayCmd struct {
	Dir string `arg:"" help:"Directory of PHH files written by play --history-dir" type:"existingdir"`
}

func (c *ReplayCmd) Run(globals *Globals) error {
	logger, closeLog, err := globals.openLog("replay")
	if err != nil {
		return err
	}
	defer closeLog()

	n, err := replayDir(c.Dir, os.Stdout, globals.NoColor)
	if err != nil {
		return err
	}
	logger.Info("Replayed hands", "dir", c.Dir, "hands", n)
	return nil
}

// replayDir narrates every hand history below dir to out
func replayDir(dir string, out io.Writer, noColor bool) (int, error) {
	files, err := history.Find(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no .phh files found in %s", dir)
	}

	bus := match.NewEventBus()
	bus.Subscribe(display.NewRenderer(out, noColor))

	for _, path := range files {
		hand, err := phh.DecodeFile(path)
		if err != nil {
			return 0, err
		}
		if err := history.Replay(hand, bus); err != nil {
			return 0, fmt.Errorf("replaying %s: %w", path, err)
		}
	}
	return len(files), nil
}
