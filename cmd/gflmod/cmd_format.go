package main

import (
	"fmt"

	"gflmod/internal/markup"

	"github.com/spf13/cobra"
)

// formatCmd normalizes indentation in the mod's markup
var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Replace tabs with spaces in every mod markup file",
	Args:  cobra.NoArgs,
	RunE:  runFormat,
}

func init() {
	addCheckFlag(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	sink := newSink()
	files, err := markup.FormatTree(sink, cfg.ModDir(), cfg.Format.Pattern, cfg.Format.TabWidth)
	if err != nil {
		return err
	}
	if sink.Check {
		return finishSink(out, sink)
	}
	for _, f := range files {
		fmt.Fprintf(out, "Formatted: %s\n", f)
	}
	success(out, "Formatted %d files", len(files))
	return nil
}
