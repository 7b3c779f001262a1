package markup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gflmod/internal/diff"
	"gflmod/internal/logging"
)

// ErrStale is returned by check runs when a generated file differs from the one on disk.
var ErrStale = errors.New("generated files are out of date")

// Sink receives generated files. Normally it writes them atomically. In check mode it
// writes nothing and records how each output differs from the file on disk.
type Sink struct {
	Check bool
	// Root, when set, makes drift paths relative to it so diffs apply with patch -p1.
	Root string

	written []string
	drift   []*diff.FileDiff
}

// NewSink returns a sink that writes files, or only compares them when check is set.
func NewSink(check bool) *Sink {
	return &Sink{Check: check}
}

// WriteFile delivers one generated file.
func (s *Sink) WriteFile(path string, data []byte) error {
	if !s.Check {
		if err := WriteFileAtomic(path, data); err != nil {
			return err
		}
		s.written = append(s.written, path)
		return nil
	}

	current, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	d := diff.Compute(s.displayPath(path), string(current), string(data), exists)
	if d.Changed() {
		logging.Get(logging.CategoryMarkup).Debug("%s is stale (+%d -%d)", path, d.Added(), d.Removed())
		s.drift = append(s.drift, d)
	}
	return nil
}

func (s *Sink) displayPath(path string) string {
	if s.Root == "" {
		return path
	}
	rel, err := filepath.Rel(s.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// Written returns the files written so far.
func (s *Sink) Written() []string {
	return s.written
}

// Drift returns the stale outputs found in check mode, sorted by path.
func (s *Sink) Drift() []*diff.FileDiff {
	out := append([]*diff.FileDiff(nil), s.drift...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Err returns ErrStale if a check run found drift.
func (s *Sink) Err() error {
	if len(s.drift) > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrStale, len(s.drift))
	}
	return nil
}
