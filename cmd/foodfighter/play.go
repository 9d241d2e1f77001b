package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/food-fighter/internal/audio"
	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/feed"
	"github.com/vovakirdan/food-fighter/internal/game"
	"github.com/vovakirdan/food-fighter/internal/platform/tui"
	"github.com/vovakirdan/food-fighter/internal/stats"
)

var (
	flagFeed   string
	flagWSAddr string
	flagMute   bool
	flagRecord string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Feeds:
  keys     - Simulate expressions with the 1-4 keys (default)
  ws       - Accept detections from a browser face tracker over WebSocket
  <path>   - Read JSON-lines detections from a file

Controls:
  Enter      - Start
  1/2        - Smile / Yawn (eat healthy food)
  3/4        - Raise eyebrows / Puff cheeks (reject junk food)
  P/Esc      - Pause
  R          - Restart
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Examples:
  foodfighter play
  foodfighter play --feed ws --ws-addr 127.0.0.1:8765
  foodfighter play --feed ws --record session.jsonl
  foodfighter play --feed session.jsonl --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFeed, "feed", "keys", "Detection feed: keys, ws or a JSON-lines file")
	playCmd.Flags().StringVar(&flagWSAddr, "ws-addr", "127.0.0.1:8765", "WebSocket feed listen address")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Append every detection to this JSON-lines file")
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile, err := openLogFile()
	if err != nil {
		fail("%v", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		fail("%v", err)
	}

	cfg, err := config.LoadFighter(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		fail("%v", err)
	}

	src, keyboard, err := openFeed(flagFeed, flagWSAddr, logger)
	if err != nil {
		fail("cannot open feed: %v", err)
	}
	defer src.Close()

	if flagRecord != "" {
		rec, recErr := os.OpenFile(flagRecord, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if recErr != nil {
			fail("cannot open record file: %v", recErr)
		}
		defer rec.Close()
		src = feed.Record(src, rec)
	}

	player := audio.NewPlayer(flagMute)
	if err := player.Initialize(); err != nil {
		// Continue without sound
		logger.Warn("audio unavailable", "error", err)
	}
	defer player.Close()

	journal, err := stats.Open()
	if err != nil {
		// Continue without the game over breakdown
		logger.Warn("could not open journal", "error", err)
	} else {
		defer journal.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("starting game", "feed", flagFeed, "fps", flagFPS, "seed", flagSeed)
	runErr := tui.Run(tui.Options{
		Game:     g,
		Source:   src,
		Keyboard: keyboard,
		Journal:  journal,
		Audio:    player,
		Logger:   logger,
		Session:  "local",
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	})
	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// openFeed opens the named detection feed. The keyboard source is returned
// separately so the UI can route expression keys to it.
func openFeed(name, wsAddr string, logger *log.Logger) (feed.Source, *feed.KeyboardSource, error) {
	switch name {
	case "keys", "":
		k := feed.NewKeyboardSource()
		return k, k, nil
	case "ws":
		ws, err := feed.ListenWebSocket(wsAddr, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("waiting for face tracker", "url", fmt.Sprintf("ws://%s/ws", ws.Addr()))
		return ws, nil, nil
	case "-":
		return nil, nil, errors.New("stdin feed is only supported by replay")
	default:
		src, err := feed.OpenFile(name)
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	}
}
