package voice

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPathLength is the longest logical path the engine loads.
const DefaultMaxPathLength = 124

// Resolver maps logical manifest paths onto the mod directory.
type Resolver struct {
	LogicalRoot   string // e.g. "data/"
	PhysicalRoot  string // e.g. "mod"
	MaxPathLength int
}

func (r Resolver) limit() int {
	if r.MaxPathLength > 0 {
		return r.MaxPathLength
	}
	return DefaultMaxPathLength
}

// TooLong reports whether path exceeds the limit, returning its length in characters.
func (r Resolver) TooLong(path string) (int, bool) {
	n := utf8.RuneCountInString(path)
	return n, n > r.limit()
}

// Physical returns the on-disk location of a logical path. Only a leading logical root
// is rewritten.
func (r Resolver) Physical(path string) string {
	if r.LogicalRoot != "" && strings.HasPrefix(path, r.LogicalRoot) {
		return filepath.Join(r.PhysicalRoot, filepath.FromSlash(strings.TrimPrefix(path, r.LogicalRoot)))
	}
	return filepath.FromSlash(path)
}

// Missing reports whether nothing exists at the physical location of path.
func (r Resolver) Missing(path string) bool {
	_, err := os.Stat(r.Physical(path))
	return err != nil
}
