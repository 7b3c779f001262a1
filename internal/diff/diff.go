// Package diff computes line diffs between a file on disk and freshly generated content,
// used to report stale generator outputs without rewriting them.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Present only in the generated content
	LineRemoved                 // Present only on disk
)

// Line represents a single line in the diff
type Line struct {
	Content string
	Type    LineType
}

// Hunk represents a group of changes
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff is the difference between the on-disk file at Path and generated content.
type FileDiff struct {
	Path  string
	IsNew bool // nothing on disk yet
	Hunks []Hunk
}

// Changed reports whether the contents differ.
func (d *FileDiff) Changed() bool {
	return d.IsNew || len(d.Hunks) > 0
}

// Added and Removed count changed lines across hunks.
func (d *FileDiff) Added() int   { return d.count(LineAdded) }
func (d *FileDiff) Removed() int { return d.count(LineRemoved) }

func (d *FileDiff) count(t LineType) int {
	n := 0
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			if l.Type == t {
				n++
			}
		}
	}
	return n
}

// Compute diffs current (on disk) against generated. exists is false when there is no
// file at path.
func Compute(path, current, generated string, exists bool) *FileDiff {
	fd := &FileDiff{Path: path, IsNew: !exists}
	if current == generated {
		return fd
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Line-level reduction avoids splitting diffs inside a line.
	a, b, lines := dmp.DiffLinesToChars(current, generated)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	fd.Hunks = groupIntoHunks(toOperations(diffs), ContextLines)
	return fd
}

type operation struct {
	typ     LineType
	oldLine int // 0-based, -1 if absent
	newLine int
	content string
}

func toOperations(diffs []diffmatchpatch.Diff) []operation {
	var ops []operation
	oldLine, newLine := 0, 0

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}

		for _, line := range lines {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, operation{LineContext, oldLine, newLine, line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, operation{LineRemoved, oldLine, -1, line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, operation{LineAdded, -1, newLine, line})
				newLine++
			}
		}
	}
	return ops
}

// groupIntoHunks splits operations into hunks, each change padded with up to
// contextLines unchanged lines on either side. Changes closer than twice that share a
// hunk.
func groupIntoHunks(ops []operation, contextLines int) []Hunk {
	var hunks []Hunk
	var current *Hunk
	lastChange := -1

	closeHunk := func() {
		trailing := 0
		for k := len(current.Lines) - 1; k >= 0 && current.Lines[k].Type == LineContext; k-- {
			trailing++
		}
		if trailing > contextLines {
			current.Lines = current.Lines[:len(current.Lines)-(trailing-contextLines)]
		}
		countLines(current)
		hunks = append(hunks, *current)
		current = nil
	}

	for i, op := range ops {
		if op.typ != LineContext {
			if current == nil {
				start := i - contextLines
				if start < 0 {
					start = 0
				}
				current = &Hunk{}
				current.OldStart, current.NewStart = hunkStart(ops, start)
				for j := start; j < i; j++ {
					current.Lines = append(current.Lines, Line{Content: ops[j].content, Type: LineContext})
				}
			}
			lastChange = i
		}

		if current == nil {
			continue
		}
		if op.typ == LineContext && i-lastChange > 2*contextLines {
			closeHunk()
			continue
		}
		current.Lines = append(current.Lines, Line{Content: op.content, Type: op.typ})
	}

	if current != nil {
		closeHunk()
	}
	return hunks
}

// hunkStart returns the 1-based old and new line numbers at ops[start].
func hunkStart(ops []operation, start int) (int, int) {
	oldStart, newStart := 1, 1
	for _, op := range ops[:start] {
		if op.typ != LineAdded {
			oldStart++
		}
		if op.typ != LineRemoved {
			newStart++
		}
	}
	return oldStart, newStart
}

// countLines fills the hunk's counts. An empty side points at the line before it, as in
// unified diff headers.
func countLines(h *Hunk) {
	for _, line := range h.Lines {
		if line.Type != LineAdded {
			h.OldCount++
		}
		if line.Type != LineRemoved {
			h.NewCount++
		}
	}
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
}

// WriteUnified writes d in unified diff format.
func WriteUnified(w io.Writer, d *FileDiff) error {
	var sb strings.Builder
	old := "a/" + d.Path
	if d.IsNew {
		old = "/dev/null"
	}
	fmt.Fprintf(&sb, "--- %s\n+++ b/%s\n", old, d.Path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Type {
			case LineAdded:
				sb.WriteString("+")
			case LineRemoved:
				sb.WriteString("-")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(l.Content)
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
