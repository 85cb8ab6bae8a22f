package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-cli/internal/history"
	"github.com/lox/holdem-cli/internal/match"
	"github.com/lox/holdem-cli/internal/randutil"
	"github.com/lox/holdem-cli/internal/statistics"
)

type SimulateCmd struct {
	SetupFlags `embed:""`

	Matches    int    `short:"n" help:"Number of matches to play" default:"100"`
	Parallel   int    `help:"Matches to run at once (0 = number of CPUs)"`
	MaxHands   int    `help:"Stop a match after this many hands (0 = play to a winner)" default:"5000"`
	HistoryDir string `help:"Save every hand as a PHH file below this directory" type:"path"`
}

var (
	reportTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)
	reportLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Width(16)
)

func (c *SimulateCmd) Run(globals *Globals) error {
	logger, closeLog, err := globals.openLog("simulate")
	if err != nil {
		return err
	}
	defer closeLog()

	setup, err := c.setup()
	if err != nil {
		return err
	}
	if c.Matches <= 0 {
		return fmt.Errorf("matches must be positive, got %d", c.Matches)
	}

	base := setup.Seed
	if base == 0 {
		base = randutil.Seed()
	}
	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "matches", c.Matches, "parallel", parallel, "seed", base)

	results := make([]match.Result, c.Matches)
	collectors := make([]*statistics.Collector, c.Matches)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i := range c.Matches {
		g.Go(func() error {
			s := setup
			s.Seed = base + int64(i)

			collector := statistics.NewCollector()
			bus := match.NewEventBus()
			bus.Subscribe(collector)
			var recorder *history.Recorder
			if c.HistoryDir != "" {
				recorder = history.NewRecorder(c.HistoryDir, logger)
				bus.Subscribe(recorder)
			}

			m, err := match.New(match.Options{
				Setup:    s,
				Default:  match.NewRandomAgent(randutil.New(s.Seed)),
				Bus:      bus,
				Logger:   logger.With("sim", i),
				MaxHands: c.MaxHands,
			})
			if err != nil {
				return err
			}

			result, err := m.Run(ctx)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, s.Seed, err)
			}
			if recorder != nil && recorder.Err() != nil {
				return fmt.Errorf("match %d: saving hand history: %w", i, recorder.Err())
			}
			results[i] = result
			collectors[i] = collector
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	writeReport(os.Stdout, summarize(results, collectors))
	return nil
}

// summary aggregates simulation results
type summary struct {
	Matches  int
	Finished int
	Capped   int
	Hands    statistics.Sample // hands per match
	Pots     *statistics.Collector
	Wins     map[int]int // by player ID
}

func summarize(results []match.Result, collectors []*statistics.Collector) summary {
	s := summary{
		Matches: len(results),
		Pots:    statistics.NewCollector(),
		Wins:    make(map[int]int),
	}
	for _, r := range results {
		s.Hands.Add(float64(r.Hands))
		if r.WinnerID == 0 {
			s.Capped++
			continue
		}
		s.Finished++
		s.Wins[r.WinnerID]++
	}
	for _, c := range collectors {
		s.Pots.Merge(c)
	}
	return s
}

func writeReport(w io.Writer, s summary) {
	fmt.Fprintln(w, reportTitle.Render("Simulation results"))

	row := func(label string, value any) {
		fmt.Fprintf(w, "%s%v\n", reportLabel.Render(label), value)
	}
	row("Matches", s.Matches)
	row("Finished", s.Finished)
	row("Hand limit hit", s.Capped)
	row("Hands/match", fmt.Sprintf("%.1f avg, %.0f median, %.0f-%.0f", s.Hands.Mean(), s.Hands.Median(), s.Hands.Min(), s.Hands.Max()))
	row("Showdowns", fmt.Sprintf("%d of %d hands (%.1f%%)", s.Pots.Showdowns, s.Pots.Hands, 100*s.Pots.ShowdownRate()))
	row("Pots", fmt.Sprintf("%d uncontested, %d side, %d split", s.Pots.Uncontested, s.Pots.SidePots, s.Pots.Splits))
	row("Pot size (bb)", fmt.Sprintf("%.1f avg, %.1f p90", s.Pots.PotSizes.Mean(), s.Pots.PotSizes.Percentile(0.9)))

	ids := make([]int, 0, len(s.Wins))
	for id := range s.Wins {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	wins := make([]string, len(ids))
	for i, id := range ids {
		wins[i] = fmt.Sprintf("P%d %d", id, s.Wins[id])
	}
	row("Wins", strings.Join(wins, ", "))
}
