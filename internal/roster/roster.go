// Package roster extracts unit rosters from unit definition markup.
//
// Extraction is pattern based rather than a full XML parse: the unit file shape is fixed
// by the game, and document order of units and classes must be preserved exactly.
package roster

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gflmod/internal/logging"
)

const (
	// UnitPrefix marks units owned by the mod.
	UnitPrefix = "GFL-UNIT-"
	// ClassPrefix marks doll classes owned by the mod.
	ClassPrefix = "GFL-DOLL-"
)

var (
	unitPattern  = regexp.MustCompile(`(?s)<Unit\s+name="(` + UnitPrefix + `[^"]+)"[^>]*flagColor="([^"]+)"[^>]*>.*?<Classes>(.*?)</Classes>`)
	classPattern = regexp.MustCompile(`<Class\s+name="(` + ClassPrefix + `[^"]+)"`)
)

// Unit is one roster grouping: a unit, its flag color and its ordered doll classes.
type Unit struct {
	Name      string
	FlagColor string
	Classes   []string
}

// Count returns the number of classes in the unit.
func (u Unit) Count() int {
	return len(u.Classes)
}

// Squad returns the lower-cased unit token without the unit prefix
// (GFL-UNIT-DEFY -> defy).
func (u Unit) Squad() string {
	return strings.ToLower(strings.ReplaceAll(u.Name, UnitPrefix, ""))
}

// Extract returns every unit found in markup, in document order. Markup without
// recognizable units yields an empty slice.
func Extract(markup string) []Unit {
	matches := unitPattern.FindAllStringSubmatch(markup, -1)
	units := make([]Unit, 0, len(matches))
	for _, m := range matches {
		var classes []string
		for _, cm := range classPattern.FindAllStringSubmatch(m[3], -1) {
			classes = append(classes, cm[1])
		}
		units = append(units, Unit{
			Name:      m[1],
			FlagColor: m[2],
			Classes:   classes,
		})
	}
	return units
}

// ExtractFile reads path and extracts its units.
func ExtractFile(path string) ([]Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unit file %s: %w", path, err)
	}
	units := Extract(string(data))
	logging.Get(logging.CategoryRoster).Debug("extracted %d units from %s", len(units), path)
	return units, nil
}

// TotalClasses sums class counts across units.
func TotalClasses(units []Unit) int {
	total := 0
	for _, u := range units {
		total += u.Count()
	}
	return total
}
