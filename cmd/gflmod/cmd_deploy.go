package main

import (
	"fmt"

	"gflmod/internal/deploy"

	"github.com/spf13/cobra"
)

// deployCmd regenerates both deploy screens
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Generate the deploy screen GUI from the unit roster",
	Long: `Reads every GFL-UNIT- unit from the unit file and writes:
  - the base deploy screen, one panel per unit
  - the tabbed GIRL deploy screen, one tab per unit

Units with more than four dolls are laid out in two columns.`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func init() {
	addCheckFlag(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	sink := newSink()
	res, err := deploy.Generate(sink, cfg.UnitFilePath(), cfg.DeployOutputPath(), cfg.DeployGirlOutputPath())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Found %d units:\n", len(res.Units))
	for _, u := range res.Units {
		fmt.Fprintf(out, "  %s: %d dolls %s\n", u.Name, u.Count(),
			dimStyle.Render(fmt.Sprintf("(%d column(s), width %d)", deploy.Columns(u.Count()), deploy.ColumnWidth(u.Count()))))
	}
	if sink.Check {
		return finishSink(out, sink)
	}
	success(out, "Wrote %s", res.BaseOut)
	success(out, "Wrote %s (%d tabs, %d slots)", res.TabbedOut, len(res.Units), res.TotalSlots)
	return nil
}
