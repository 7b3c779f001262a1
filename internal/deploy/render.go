// Package deploy generates deploy screen GUI markup from unit rosters.
//
// Two screens are produced: the base deploy screen with one panel per unit, and the
// tabbed GIRL screen that stacks every unit behind a row of mutually exclusive tabs.
// Output is deterministic; regenerating from the same roster yields identical bytes.
package deploy

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gflmod/internal/roster"
)

const (
	// TabbedContainer is the unit item hosting the tabbed screen.
	TabbedContainer = "GFL-UNIT-GIRL"
	// TabbedFlagColor colors every class bar on the tabbed screen.
	TabbedFlagColor = "E3F6FD"

	baseItemIndent   = " "
	tabbedItemIndent = "        "
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("deploy").ParseFS(templateFS, "templates/*.tmpl"))

type classItemData struct {
	Slot
	Width     int
	FlagColor string
	Tabbed    bool
}

type baseUnitData struct {
	Name  string
	Items []string
}

type tabData struct {
	Index        int
	Name         string
	Squad        string
	X            int
	DefaultState string
	Hidden       bool
	Others       []int
	Items        []string
}

func execute(name string, data interface{}) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

// indentLines prefixes every non-empty line of s with indent.
func indentLines(s, indent string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString(line)
	}
	return sb.String()
}

func renderItems(unit roster.Unit, slots []Slot, flagColor string, tabbed bool, indent string) ([]string, error) {
	width := ColumnWidth(unit.Count())
	items := make([]string, 0, len(slots))
	for _, s := range slots {
		item, err := execute("class_item.tmpl", classItemData{
			Slot:      s,
			Width:     width,
			FlagColor: flagColor,
			Tabbed:    tabbed,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, indentLines(item, indent))
	}
	return items, nil
}

// RenderBase renders the base deploy screen: one panel per unit, classes laid out from
// the standalone origin and slots numbered from zero within each unit.
func RenderBase(units []roster.Unit) (string, error) {
	data := struct{ Units []baseUnitData }{}
	for _, u := range units {
		items, err := renderItems(u, Layout(u, BaseYStandalone, 0), u.FlagColor, false, baseItemIndent)
		if err != nil {
			return "", err
		}
		data.Units = append(data.Units, baseUnitData{Name: u.Name, Items: items})
	}
	return execute("base.tmpl", data)
}

// RenderTabbed renders the tabbed GIRL deploy screen. The first tab starts checked and
// every tab unchecks all the others when clicked.
func RenderTabbed(units []roster.Unit) (string, error) {
	layouts := TabbedLayout(units)
	tabs := make([]tabData, 0, len(units))
	for i, u := range units {
		items, err := renderItems(u, layouts[i], TabbedFlagColor, true, tabbedItemIndent)
		if err != nil {
			return "", err
		}
		tab := tabData{
			Index:        i,
			Name:         u.Name,
			Squad:        u.Squad(),
			X:            TabX(i),
			DefaultState: "UncheckedState",
			Hidden:       i != 0,
			Others:       otherTabs(i, len(units)),
			Items:        items,
		}
		if i == 0 {
			tab.DefaultState = "CheckedState"
		}
		tabs = append(tabs, tab)
	}

	return execute("tabbed.tmpl", struct {
		Container string
		FlagColor string
		Tabs      []tabData
	}{
		Container: TabbedContainer,
		FlagColor: TabbedFlagColor,
		Tabs:      tabs,
	})
}

// otherTabs lists every tab index in [0, total) except self.
func otherTabs(self, total int) []int {
	others := make([]int, 0, total)
	for i := 0; i < total; i++ {
		if i != self {
			others = append(others, i)
		}
	}
	return others
}
