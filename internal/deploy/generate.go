package deploy

import (
	"fmt"

	"gflmod/internal/logging"
	"gflmod/internal/markup"
	"gflmod/internal/roster"
)

// Result summarizes one generation run.
type Result struct {
	Units      []roster.Unit
	BaseOut    string
	TabbedOut  string
	TotalSlots int
}

// Generate reads the unit roster from unitFile and delivers both deploy screens to sink.
func Generate(sink *markup.Sink, unitFile, baseOut, tabbedOut string) (*Result, error) {
	timer := logging.StartTimer(logging.CategoryDeploy, "Generate")
	defer timer.Stop()

	log := logging.Get(logging.CategoryDeploy)

	units, err := roster.ExtractFile(unitFile)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no %s units found in %s", roster.UnitPrefix, unitFile)
	}
	for _, u := range units {
		log.Debug("%s: %d dolls, %d column(s), color=%s", u.Name, u.Count(), Columns(u.Count()), u.FlagColor)
	}

	base, err := RenderBase(units)
	if err != nil {
		return nil, err
	}
	if err := sink.WriteFile(baseOut, []byte(base)); err != nil {
		return nil, err
	}
	log.Debug("rendered base deploy screen %s", baseOut)

	tabbed, err := RenderTabbed(units)
	if err != nil {
		return nil, err
	}
	if err := sink.WriteFile(tabbedOut, []byte(tabbed)); err != nil {
		return nil, err
	}
	log.Debug("rendered tabbed deploy screen %s", tabbedOut)

	return &Result{
		Units:      units,
		BaseOut:    baseOut,
		TabbedOut:  tabbedOut,
		TotalSlots: roster.TotalClasses(units),
	}, nil
}
