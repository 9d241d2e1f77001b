package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/game"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Show the food table",
	Long: `List every food with the expression it needs and its points.

Uses the same configuration search as play, so a custom --config shows
its own table.`,
	Args: cobra.NoArgs,
	Run:  runFoods,
}

func runFoods(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadFighter(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	specs, err := game.SpecsFromConfig(cfg.Foods)
	if err != nil {
		fail("%v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GLYPH\tFOOD\tTYPE\tACTION\tEXPRESSION\tPOINTS")
	for _, s := range specs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", s.Glyph, s.Kind, s.Category, s.Verb(), s.Required, s.Points)
	}
	w.Flush()

	fmt.Printf("\nMissed food costs %d points. Below %d the game is over.\n",
		cfg.Score.MissPenalty, cfg.Score.GameOverBelow)
}
