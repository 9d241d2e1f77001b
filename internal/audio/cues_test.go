package audio

import (
	"math"
	"testing"
)

func drain(t *testing.T, c Cue) (int, float64) {
	t.Helper()
	s := Streamer(c)
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("%s: streamer error: %v", c, err)
	}
	return total, peak
}

func TestCueLengths(t *testing.T) {
	for _, c := range []Cue{CueSuccess, CueFailure, CueMiss, CueGameOver} {
		t.Run(c.String(), func(t *testing.T) {
			want := 0
			for _, n := range cueNotes[c] {
				want += sampleRate.N(n.dur)
			}
			got, peak := drain(t, c)
			if got != want {
				t.Errorf("streamed %d samples, expected %d", got, want)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak amplitude %v outside (0, 1]", peak)
			}
			if Duration(c) <= 0 {
				t.Errorf("Duration() = %v", Duration(c))
			}
		})
	}
}

func TestToneGeneratorEnvelope(t *testing.T) {
	g := NewToneGenerator(sampleRate, 440, 440, 1000, 0.5)
	buf := make([][2]float64, 1000)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample should be silent, got %v", buf[0][0])
	}
	for i, s := range buf {
		if s[0] != s[1] {
			t.Fatalf("sample %d is not mono", i)
		}
		if math.Abs(s[0]) > 0.5 {
			t.Fatalf("sample %d exceeds gain: %v", i, s[0])
		}
	}
}

// Playing without an initialized speaker must be a silent no-op.
func TestPlayerGracefulDegradation(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	p := NewPlayer(false)
	p.Play(CueSuccess)
	p.Close()

	muted := NewPlayer(true)
	if err := muted.Initialize(); err != nil {
		t.Errorf("muted Initialize() should not fail: %v", err)
	}
	muted.Play(CueGameOver)
	muted.Close()
}
