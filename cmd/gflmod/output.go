package main

import (
	"io"

	"gflmod/internal/diff"
	"gflmod/internal/markup"

	"github.com/spf13/cobra"
)

// addCheckFlag registers --check on a generating command.
func addCheckFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Write nothing; print a diff of every output that is out of date and fail if any is")
}

func newSink() *markup.Sink {
	sink := markup.NewSink(checkOnly)
	sink.Root = cfg.Project
	return sink
}

// finishSink prints the drift collected by a check run and reports it as an error.
func finishSink(out io.Writer, sink *markup.Sink) error {
	if !sink.Check {
		return nil
	}
	drift := sink.Drift()
	for _, d := range drift {
		if err := diff.WriteUnified(out, d); err != nil {
			return err
		}
	}
	if len(drift) == 0 {
		success(out, "All generated files are up to date")
		return nil
	}
	failure(out, "%d generated file(s) are out of date", len(drift))
	return sink.Err()
}
