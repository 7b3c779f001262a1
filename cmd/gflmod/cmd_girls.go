package main

import (
	"fmt"

	"gflmod/internal/variant"

	"github.com/spf13/cobra"
)

var (
	girlsEntities bool
	girlsUnits    bool
	girlsAll      bool
)

// girlsCmd derives the GIRL faction
var girlsCmd = &cobra.Command{
	Use:   "girls",
	Short: "Derive GIRL entities and the GFL-UNIT-GIRL unit",
	Long: `Derives the GIRL faction from the base definitions.

  --entities  copy every base entity as GIRL-<name>, owned by GFL-UNIT-GIRL
  --units     build GFL-UNIT-GIRL from every doll class of every base unit
  --all       both (default when no flag is given)`,
	Args: cobra.NoArgs,
	RunE: runGirls,
}

func init() {
	girlsCmd.Flags().BoolVar(&girlsEntities, "entities", false, "Generate only entity variants")
	girlsCmd.Flags().BoolVar(&girlsUnits, "units", false, "Generate only the unit definition")
	girlsCmd.Flags().BoolVar(&girlsAll, "all", false, "Generate both")
	addCheckFlag(girlsCmd)
}

func runGirls(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	none := !girlsEntities && !girlsUnits && !girlsAll
	doEntities := girlsEntities || girlsAll || none
	doUnits := girlsUnits || girlsAll || none
	sink := newSink()

	if doEntities {
		heading(out, "Generating GIRL Entities")
		entities, err := variant.GenerateEntities(sink, cfg.EntitiesFilePath(), cfg.EntitiesGirlOutputPath())
		if err != nil {
			return err
		}
		for _, e := range entities {
			fmt.Fprintf(out, "  %s -> %s\n", e.SourceName, e.Name)
		}
		if !sink.Check {
			success(out, "Generated %d GIRL entities in %s", len(entities), cfg.EntitiesGirlOutputPath())
		}
	}

	if doUnits {
		heading(out, "Generating GIRL Unit")
		classes, err := variant.GenerateUnit(sink, cfg.UnitFilePath(), cfg.UnitGirlOutputPath())
		if err != nil {
			return err
		}
		if !sink.Check {
			success(out, "Generated %s with %d classes in %s", variant.VariantUnit, len(classes), cfg.UnitGirlOutputPath())
		}
	}
	return finishSink(out, sink)
}
