package variant

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"gflmod/internal/logging"
	"gflmod/internal/roster"
)

// RequiredClassAttrs must be present and non-empty on every collected class.
var RequiredClassAttrs = []string{
	"nameUI", "description", "numSlots", "supply", "iconTex", "upgrades", "maxUpgradeable",
}

var (
	classFragment = regexp.MustCompile(`(?s)<Class\s[^>]*/>`)
	classAttr     = regexp.MustCompile(`([A-Za-z_][\w.-]*)\s*=\s*"([^"]*)"`)
)

// ClassFragment is a self-closing <Class .../> definition copied verbatim.
type ClassFragment struct {
	Name   string
	Markup string
}

func classAttrs(fragment string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range classAttr.FindAllStringSubmatch(fragment, -1) {
		if _, dup := attrs[m[1]]; !dup {
			attrs[m[1]] = m[2]
		}
	}
	return attrs
}

// CollectClasses gathers every class definition in markup, whichever unit owns it.
// Order is first-encountered. A class name appearing more than once is kept once;
// a later copy with different markup is logged and dropped.
func CollectClasses(markup string) ([]ClassFragment, error) {
	log := logging.Get(logging.CategoryVariant)

	var out []ClassFragment
	seen := make(map[string]int)
	for _, fragment := range classFragment.FindAllString(markup, -1) {
		attrs := classAttrs(fragment)
		name := attrs["name"]
		if !strings.HasPrefix(name, roster.ClassPrefix) || len(name) == len(roster.ClassPrefix) {
			return nil, &PreconditionError{
				Subject: "class",
				Name:    name,
				Reason:  fmt.Sprintf("class name must start with %s", roster.ClassPrefix),
			}
		}
		for _, attr := range RequiredClassAttrs {
			if attrs[attr] == "" {
				return nil, &PreconditionError{
					Subject: "class",
					Name:    name,
					Reason:  fmt.Sprintf("missing required attribute %s", attr),
				}
			}
		}

		if i, ok := seen[name]; ok {
			if out[i].Markup != fragment {
				log.Warn("class %s defined more than once with different attributes; keeping the first", name)
			}
			continue
		}
		seen[name] = len(out)
		out = append(out, ClassFragment{Name: name, Markup: fragment})
	}
	return out, nil
}

// TrooperRank is one entry of the GIRL unit's trooper rank table.
type TrooperRank struct {
	Name     string
	XPNeeded int
	BadgeTex string
}

// UnitRank is one entry of the GIRL unit's rank table.
type UnitRank struct {
	XPNeeded int
}

var trooperXP = []int{0, 700, 2300, 5600, 11800, 22400, 38400, 60200, 86400, 126400}

var unitXP = []int{0, 4000, 9000, 14980, 21920, 29800, 38600, 48310, 58900, 70360}

// TrooperRanks returns the fixed trooper rank table.
func TrooperRanks() []TrooperRank {
	ranks := make([]TrooperRank, len(trooperXP))
	for i, xp := range trooperXP {
		ranks[i] = TrooperRank{
			Name:     fmt.Sprintf("@agent_rank_%d", i),
			XPNeeded: xp,
			BadgeTex: fmt.Sprintf("data/textures/gui/customization/cia_rank_%02d.dds", i+1),
		}
	}
	return ranks
}

// UnitRanks returns the fixed unit rank table.
func UnitRanks() []UnitRank {
	ranks := make([]UnitRank, len(unitXP))
	for i, xp := range unitXP {
		ranks[i] = UnitRank{XPNeeded: xp}
	}
	return ranks
}

//go:embed templates/unit.tmpl
var templateFS embed.FS

var unitTemplate = template.Must(template.ParseFS(templateFS, "templates/unit.tmpl"))

// RenderUnit renders the GFL-UNIT-GIRL definition holding classes.
func RenderUnit(classes []ClassFragment) (string, error) {
	lines := make([]string, len(classes))
	for i, c := range classes {
		lines[i] = strings.Repeat(indent, 3) + c.Markup
	}

	var sb strings.Builder
	err := unitTemplate.Execute(&sb, struct {
		Name         string
		Classes      string
		TrooperRanks []TrooperRank
		Ranks        []UnitRank
	}{
		Name:         VariantUnit,
		Classes:      strings.Join(lines, "\n"),
		TrooperRanks: TrooperRanks(),
		Ranks:        UnitRanks(),
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", VariantUnit, err)
	}
	return sb.String(), nil
}
