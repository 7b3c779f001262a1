package voice

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	fileStyle = lipgloss.NewStyle().Bold(true)
	packStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

const (
	okMark   = "✓"
	failMark = "✗"
)

// RenderReport writes a human-readable account of every violation in report.
func RenderReport(w io.Writer, report Report) error {
	var sb strings.Builder
	for _, f := range report.Files {
		renderFile(&sb, f)
	}

	sb.WriteString("\n")
	if report.OK() {
		sb.WriteString(okStyle.Render(okMark+" All voice files validated successfully!") + "\n")
	} else {
		sb.WriteString(failStyle.Render(failMark+" Some voice files are invalid!") + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderFile(sb *strings.Builder, f FileReport) {
	fmt.Fprintf(sb, "\n%s\n", fileStyle.Render("Validating "+f.File+"..."))

	for _, p := range f.Packs {
		fmt.Fprintf(sb, "\n  Pack: %s\n", packStyle.Render(p.Pack))
		if len(p.Invalid) > 0 {
			failLine(sb, "    ", fmt.Sprintf("Found %d invalid sound IDs:", len(p.Invalid)))
			for _, id := range p.Invalid {
				fmt.Fprintf(sb, "      - %s\n", id)
			}
		}
		if len(p.Missing) > 0 {
			failLine(sb, "    ", fmt.Sprintf("Missing %d required sound IDs:", len(p.Missing)))
			for _, id := range p.Missing {
				fmt.Fprintf(sb, "      - %s\n", id)
			}
		}
		if len(p.Duplicates) > 0 {
			failLine(sb, "    ", fmt.Sprintf("Found %d duplicate sound IDs:", len(p.Duplicates)))
			for _, id := range p.DuplicateIDs() {
				fmt.Fprintf(sb, "      - %s %s\n", id, noteStyle.Render(fmt.Sprintf("(appears %d times)", p.Duplicates[id])))
			}
		}
		if p.Valid() {
			fmt.Fprintf(sb, "    %s\n", okStyle.Render(fmt.Sprintf("%s All %d sound IDs are valid and complete", okMark, p.SoundCount)))
		}
	}

	if len(f.LongPaths) > 0 {
		sb.WriteString("\n")
		failLine(sb, "  ", fmt.Sprintf("Found %d file paths exceeding %d character limit:", len(f.LongPaths), f.LongPaths[0].Limit))
		for _, p := range f.LongPaths {
			fmt.Fprintf(sb, "    - %s\n", p.Path)
			fmt.Fprintf(sb, "      %s\n", noteStyle.Render(fmt.Sprintf("(length: %d chars, exceeds limit by %d)", p.Length, p.Excess())))
		}
	}

	sb.WriteString("\n")
	if len(f.MissingFiles) > 0 {
		failLine(sb, "  ", fmt.Sprintf("Found %d missing voice files:", len(f.MissingFiles)))
		for _, p := range f.MissingFiles {
			fmt.Fprintf(sb, "    - %s\n", p.Path)
			fmt.Fprintf(sb, "      %s\n", noteStyle.Render(fmt.Sprintf("(expected at: %s)", p.Physical)))
		}
	} else {
		fmt.Fprintf(sb, "  %s\n", okStyle.Render(fmt.Sprintf("%s All %d referenced voice files exist", okMark, f.PathsChecked)))
	}
}

func failLine(sb *strings.Builder, indent, msg string) {
	fmt.Fprintf(sb, "%s%s\n", indent, failStyle.Render(failMark+" "+msg))
}
