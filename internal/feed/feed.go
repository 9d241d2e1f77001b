// Package feed provides detection sources for the game: recorded JSON-lines
// streams, a WebSocket endpoint for a browser face tracker and a
// keyboard-driven simulated face.
//
// Wire format, one JSON value per frame:
//
//	{"landmarks":[[x,y], ... 68 points],"expressions":{"happy":0.9,"surprised":0.1}}
//	null
//
// null means no face was found in the frame. Points may also be written
// as {"x":..,"y":..} objects.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vovakirdan/food-fighter/internal/face"
)

// ErrClosed is returned by sources that were closed while in use.
var ErrClosed = errors.New("feed: source closed")

// Source yields detections. Next returns a nil detection when no face is
// visible and io.EOF when the stream is over.
type Source interface {
	Next(ctx context.Context) (*face.Detection, error)
	Close() error
}

type wireDetection struct {
	Landmarks   []wirePoint        `json:"landmarks"`
	Expressions map[string]float64 `json:"expressions"`
}

type wirePoint face.Point

// UnmarshalJSON accepts both [x, y] pairs and {"x":..,"y":..} objects.
func (p *wirePoint) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var xy []float64
		if err := json.Unmarshal(data, &xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("point needs 2 coordinates, got %d", len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	}

	var obj face.Point
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = wirePoint(obj)
	return nil
}

// Decode parses one wire frame.
func Decode(data []byte) (*face.Detection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var w wireDetection
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("feed: decode: %w", err)
	}

	points := make([]face.Point, len(w.Landmarks))
	for i, p := range w.Landmarks {
		points[i] = face.Point(p)
	}
	set, err := face.NewLandmarkSet(points)
	if err != nil {
		return nil, fmt.Errorf("feed: decode: %w", err)
	}

	scores := face.Scores(w.Expressions)
	if scores == nil {
		scores = face.Scores{}
	}
	return &face.Detection{Landmarks: set, Expressions: scores}, nil
}

// Encode writes d as one wire frame without a trailing newline.
func Encode(d *face.Detection) ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	pts := d.Landmarks.Points()
	pairs := make([][2]float64, len(pts))
	for i, p := range pts {
		pairs[i] = [2]float64{p.X, p.Y}
	}
	return json.Marshal(struct {
		Landmarks   [][2]float64       `json:"landmarks"`
		Expressions map[string]float64 `json:"expressions"`
	}{pairs, d.Expressions})
}

// Recorder wraps a Source and appends every detection it yields to w as
// JSON lines, so a session can be replayed later.
type Recorder struct {
	Source
	w io.Writer
}

// Record returns src wrapped in a Recorder writing to w.
func Record(src Source, w io.Writer) *Recorder {
	return &Recorder{Source: src, w: w}
}

// Next forwards to the wrapped source and records the result.
func (r *Recorder) Next(ctx context.Context) (*face.Detection, error) {
	d, err := r.Source.Next(ctx)
	if err != nil {
		return d, err
	}

	line, err := Encode(d)
	if err != nil {
		return d, fmt.Errorf("feed: record: %w", err)
	}
	if _, err := r.w.Write(append(line, '\n')); err != nil {
		return d, fmt.Errorf("feed: record: %w", err)
	}
	return d, nil
}
