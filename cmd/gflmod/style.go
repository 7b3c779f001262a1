package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E3F6FD"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

func heading(w io.Writer, title string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "%s\n%s\n%s\n", rule, titleStyle.Render(title), rule)
}

func success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, okStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func failure(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, failStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}
