// Package audio plays short synthesized cues for game events.
// Audio is optional: when the speaker cannot be opened every call is a no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a sound.
type Cue int

const (
	CueSuccess  Cue = iota // food resolved correctly
	CueFailure             // food resolved with the wrong action
	CueMiss                // food fell off the field
	CueGameOver            // score dropped below the floor
)

func (c Cue) String() string {
	switch c {
	case CueSuccess:
		return "success"
	case CueFailure:
		return "failure"
	case CueMiss:
		return "miss"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// note is one segment of a cue.
type note struct {
	from, to float64 // Hz; a sweep when they differ
	dur      time.Duration
	gain     float64
}

var cueNotes = map[Cue][]note{
	CueSuccess: {
		{from: 660, to: 660, dur: 70 * time.Millisecond, gain: 0.25},
		{from: 880, to: 880, dur: 110 * time.Millisecond, gain: 0.25},
	},
	CueFailure: {
		{from: 150, to: 120, dur: 200 * time.Millisecond, gain: 0.3},
	},
	CueMiss: {
		{from: 440, to: 220, dur: 250 * time.Millisecond, gain: 0.2},
	},
	CueGameOver: {
		{from: 523, to: 523, dur: 180 * time.Millisecond, gain: 0.25},
		{from: 392, to: 392, dur: 180 * time.Millisecond, gain: 0.25},
		{from: 262, to: 196, dur: 450 * time.Millisecond, gain: 0.25},
	},
}

// Duration returns how long a cue plays.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}

// Streamer returns a finite streamer for c at the package sample rate.
func Streamer(c Cue) beep.Streamer {
	notes := cueNotes[c]
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sampleRate.N(n.dur)
		parts = append(parts, beep.Take(samples, NewToneGenerator(sampleRate, n.from, n.to, samples, n.gain)))
	}
	return beep.Seq(parts...)
}

// Player plays cues through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Call Initialize before playing.
func NewPlayer(muted bool) *Player {
	return &Player{
		mixer: &beep.Mixer{},
		muted: muted,
	}
}

// Initialize opens the speaker. Muted players never touch the device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues c on the mixer.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(Streamer(c))
	speaker.Unlock()
}

// Close silences pending cues.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// ToneGenerator produces a sine tone sweeping linearly from one frequency
// to another over a fixed number of samples, with a short attack and a
// release at the end.
type ToneGenerator struct {
	sr      beep.SampleRate
	from    float64
	to      float64
	samples int
	gain    float64
	pos     int
	phase   float64
}

// NewToneGenerator creates a tone generator.
func NewToneGenerator(sr beep.SampleRate, from, to float64, samples int, gain float64) *ToneGenerator {
	if samples < 1 {
		samples = 1
	}
	return &ToneGenerator{sr: sr, from: from, to: to, samples: samples, gain: gain}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	attack := float64(g.sr.N(5 * time.Millisecond))
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.from + (g.to-g.from)*progress

		// Integrate the phase so sweeps stay continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		envelope := math.Min(float64(g.pos)/attack, 1) * (1 - progress)
		sample := g.gain * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
