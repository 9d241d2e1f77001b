// foodfighter is a terminal game played with facial expressions: eat healthy
// food and reject junk food before it falls off the screen.
//
// Usage:
//
//	foodfighter play             - Play in the terminal
//	foodfighter replay <file>    - Run a recorded detection stream headless
//	foodfighter serve            - Start SSH server for remote play
//	foodfighter foods            - Show the food table
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom fighter.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envPrefix prefixes the environment variables that provide flag defaults,
// e.g. FOODFIGHTER_WS_ADDR for --ws-addr.
const envPrefix = "FOODFIGHTER_"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foodfighter",
	Short: "Food Fighter - Eat with your face",
	Long: `Food Fighter is a terminal game controlled by facial expressions.

Foods fall one at a time. Make the right face before they reach the
bottom: smile or yawn to eat healthy food, raise your eyebrows or puff
your cheeks to reject junk food.

Available commands:
  play     - Play in the terminal
  replay   - Run a recorded detection stream without a terminal UI
  serve    - Start SSH server for remote play
  foods    - Show the food table

Environment variables prefixed with FOODFIGHTER_ (also read from .env)
provide flag defaults, e.g. FOODFIGHTER_FEED=ws.

Examples:
  foodfighter play
  foodfighter play --feed ws --ws-addr 127.0.0.1:8765
  foodfighter replay session.jsonl --json
  foodfighter serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd)
	},
}

func init() {
	cobra.OnInitialize(func() {
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom fighter config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(foodsCmd)
}

// applyEnv fills every flag the user did not set from its FOODFIGHTER_
// environment variable.
func applyEnv(cmd *cobra.Command) error {
	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || firstErr != nil {
			return
		}
		val, ok := os.LookupEnv(envName(f.Name))
		if !ok {
			return
		}
		if err := f.Value.Set(val); err != nil {
			firstErr = fmt.Errorf("invalid %s: %w", envName(f.Name), err)
		}
	})
	return firstErr
}

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
