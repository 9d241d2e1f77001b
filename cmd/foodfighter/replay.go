package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
	"github.com/vovakirdan/food-fighter/internal/feed"
	"github.com/vovakirdan/food-fighter/internal/game"
	"github.com/vovakirdan/food-fighter/internal/stats"
)

var (
	flagReplayJSON     bool
	flagReplayMaxTicks int
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Run a recorded detection stream without a terminal UI",
	Long: `Play a JSON-lines detection stream through the game on a virtual
clock and print what the classifier saw and how the run ended.

Each line is one detection:
  {"landmarks": [[x, y], ...68 points], "expressions": {"happy": 0.9}}
A line holding null means no face was found.

Reads stdin when the file is omitted or "-".

Examples:
  foodfighter replay session.jsonl
  foodfighter replay session.jsonl --json
  cat session.jsonl | foodfighter replay --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayJSON, "json", false, "Print the final snapshot as JSON")
	replayCmd.Flags().IntVar(&flagReplayMaxTicks, "max-ticks", 0, "Stop after this many ticks (0 = until the stream ends)")
}

func runReplay(_ *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.LoadFighter(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	g, err := game.New(cfg)
	if err != nil {
		fail("%v", err)
	}

	src, err := feed.OpenFile(path)
	if err != nil {
		fail("cannot open feed: %v", err)
	}
	defer src.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = seed
	g.Reset(rc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := game.Simulate(ctx, g, src, game.SimOptions{
		TickRate: flagFPS,
		MaxTicks: flagReplayMaxTicks,
		Start:    time.Unix(0, 0),
		OnError: func(err error) {
			logger.Warn("skipping detection", "error", err)
		},
	})
	if err != nil {
		logger.Warn("replay interrupted", "error", err)
	}

	if flagReplayJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Final); err != nil {
			fail("%v", err)
		}
		return
	}

	printReplay(res, seed, logger)
}

func printReplay(res game.SimResult, seed int64, logger *log.Logger) {
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d\n", res.Ticks)
	fmt.Printf("Detections:  %d (%d skipped)\n", res.Detections, res.Skipped)
	fmt.Printf("Final score: %d (%s)\n", res.Final.Score, res.Final.Phase)

	if len(res.Labels) > 0 {
		fmt.Println()
		fmt.Println("Expressions:")
		labels := make([]face.Label, 0, len(res.Labels))
		for l := range res.Labels {
			labels = append(labels, l)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
		for _, l := range labels {
			fmt.Printf("  %-14s %d\n", l, res.Labels[l])
		}
	}

	rows, err := tally(res.Events)
	if err != nil {
		logger.Warn("could not tally outcomes", "error", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-9s %-7s %4s %5s %6s %6s\n", "FOOD", "TYPE", "OK", "WRONG", "MISSED", "POINTS")
	for _, r := range rows {
		fmt.Printf("  %-9s %-7s %4d %5d %6d %+6d\n", r.Kind, r.Category, r.Resolved, r.Wrong, r.Missed, r.Points)
	}
}

// tally runs the events through a journal to get the per-food breakdown.
func tally(events []game.Event) ([]stats.KindStats, error) {
	j, err := stats.Open()
	if err != nil {
		return nil, err
	}
	defer j.Close()

	runID, err := j.StartRun("replay")
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if o, ok := stats.OutcomeFromEvent(ev); ok {
			if err := j.Record(runID, o); err != nil {
				return nil, err
			}
		}
	}
	return j.Breakdown(runID)
}
