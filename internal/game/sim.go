package game

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
)

// DetectionSource yields one detection per call. A nil detection means no
// face; io.EOF ends the stream.
type DetectionSource interface {
	Next(ctx context.Context) (*face.Detection, error)
}

// SimOptions controls a headless run.
type SimOptions struct {
	TickRate int       // Render ticks per virtual second; defaults to 60
	MaxTicks int       // Upper bound on ticks; 0 means until the stream ends
	Start    time.Time // Virtual clock origin
	OnError  func(error)
}

// SimResult summarises a headless run.
type SimResult struct {
	Ticks      uint64
	Detections int
	Skipped    int
	Labels     map[face.Label]int
	Events     []Event
	Final      Snapshot
}

// Simulate drives g on a virtual clock, pulling one detection from src at
// every detect interval and attempting a spawn at every spawn interval.
// The first food drops as soon as the game starts. Within a tick the order
// is spawn, detect, step. The run stops when the
// stream ends, the game is over, MaxTicks is reached or ctx is done.
func Simulate(ctx context.Context, g *Game, src DetectionSource, opts SimOptions) (SimResult, error) {
	rate := opts.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	tickDur := time.Second / time.Duration(rate)
	timing := g.cfg.Timing
	spawnEvery := ticksPer(timing.SpawnInterval(), tickDur)
	detectEvery := ticksPer(timing.DetectInterval(), tickDur)

	res := SimResult{Labels: make(map[face.Label]int)}

	start := core.NewInputFrame()
	start.Set(core.ActionStart)
	g.Step(start)
	g.Spawn()
	res.Events = append(res.Events, g.Events()...)

	idle := core.NewInputFrame()
	for tick := 1; opts.MaxTicks == 0 || tick <= opts.MaxTicks; tick++ {
		if err := ctx.Err(); err != nil {
			res.Final = g.Snapshot()
			return res, err
		}
		now := opts.Start.Add(time.Duration(tick) * tickDur)

		if tick%spawnEvery == 0 {
			g.Spawn()
		}

		if tick%detectEvery == 0 {
			d, err := src.Next(ctx)
			switch {
			case errors.Is(err, io.EOF):
				res.Ticks = uint64(tick)
				res.Final = g.Snapshot()
				return res, nil
			case err != nil:
				res.Skipped++
				if opts.OnError != nil {
					opts.OnError(err)
				}
			default:
				res.Detections++
				if label := g.Detect(d, now); !label.IsNone() {
					res.Labels[label]++
				}
			}
		}

		g.Step(idle)
		res.Events = append(res.Events, g.Events()...)
		res.Ticks = uint64(tick)

		if g.GameOver() {
			break
		}
	}

	res.Final = g.Snapshot()
	return res, nil
}

func ticksPer(interval, tick time.Duration) int {
	n := int(interval / tick)
	if n < 1 {
		return 1
	}
	return n
}
