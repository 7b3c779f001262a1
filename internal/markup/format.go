package markup

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gflmod/internal/logging"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandTabs replaces every tab with width spaces.
func ExpandTabs(data []byte, width int) []byte {
	return bytes.ReplaceAll(data, []byte("\t"), bytes.Repeat([]byte(" "), width))
}

// FormatTree expands tabs in every file under root matching pattern (a doublestar glob
// relative to root, e.g. "**/*.xml") and hands the result to sink. Files without tabs
// are left untouched. Returns the files that needed formatting, sorted.
func FormatTree(sink *Sink, root, pattern string, width int) ([]string, error) {
	log := logging.Get(logging.CategoryMarkup)

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q under %s: %w", pattern, root, err)
	}
	sort.Strings(matches)

	var formatted []string
	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err != nil {
			return formatted, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return formatted, fmt.Errorf("read %s: %w", path, err)
		}
		if !bytes.Contains(data, []byte("\t")) {
			continue
		}
		if err := sink.WriteFile(path, ExpandTabs(data, width)); err != nil {
			return formatted, err
		}
		log.Debug("formatted %s", path)
		formatted = append(formatted, path)
	}
	return formatted, nil
}
