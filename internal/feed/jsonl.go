package feed

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vovakirdan/food-fighter/internal/face"
)

// maxLineSize bounds a single JSON line.
const maxLineSize = 1 << 20

// LineSource reads detections from a JSON-lines stream.
type LineSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewLineSource reads frames from r. Blank lines are skipped.
func NewLineSource(r io.Reader) *LineSource {
	s := &LineSource{scanner: newScanner(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenFile opens a JSON-lines file, or stdin when path is "-".
func OpenFile(path string) (*LineSource, error) {
	if path == "-" {
		return &LineSource{scanner: newScanner(os.Stdin)}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: open %s: %w", path, err)
	}
	return NewLineSource(f), nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

// Next returns the next frame. A malformed line yields an error naming the
// line; the following call continues with the next line.
func (s *LineSource) Next(ctx context.Context) (*face.Detection, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("feed: read: %w", err)
			}
			return nil, io.EOF
		}
		s.line++

		data := s.scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		d, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", s.line, err)
		}
		return d, nil
	}
}

// Close closes the underlying file, if any.
func (s *LineSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
