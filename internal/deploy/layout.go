package deploy

import "gflmod/internal/roster"

// Grid constants for deploy screen class items.
const (
	RowHeight          = 160
	BaseYStandalone    = -214
	BaseYTabbed        = 0
	LeftColumnX        = -101
	RightColumnX       = 100
	SingleColumnX      = 0
	SingleColumnWidth  = 380
	TwoColumnWidth     = 178
	TwoColumnThreshold = 4

	FirstTabX  = -304
	TabSpacing = 72
)

// Slot is the computed placement of one class item.
type Slot struct {
	Class  string
	Index  int // portrait slot, bound to #slot<Index>
	Column int
	Row    int
	X      int
	Y      int
}

// Columns returns 2 when a unit has more than four classes, otherwise 1.
func Columns(count int) int {
	if count > TwoColumnThreshold {
		return 2
	}
	return 1
}

// ColumnWidth returns the class item width for a unit of count classes.
func ColumnWidth(count int) int {
	if Columns(count) == 2 {
		return TwoColumnWidth
	}
	return SingleColumnWidth
}

// Place computes the grid position of the class at index within a unit of count
// classes. baseY is BaseYStandalone or BaseYTabbed. The returned Index is the local
// index; Layout rebases it.
func Place(index, count, baseY int) Slot {
	s := Slot{Index: index}
	if Columns(count) == 2 {
		s.Column = index % 2
		s.Row = index / 2
		if s.Column == 0 {
			s.X = LeftColumnX
		} else {
			s.X = RightColumnX
		}
	} else {
		s.Row = index
		s.X = SingleColumnX
	}
	s.Y = baseY + s.Row*-RowHeight
	return s
}

// Layout places every class of unit. Slot indexes start at firstSlot.
func Layout(unit roster.Unit, baseY, firstSlot int) []Slot {
	slots := make([]Slot, 0, unit.Count())
	for i, class := range unit.Classes {
		s := Place(i, unit.Count(), baseY)
		s.Class = class
		s.Index = firstSlot + i
		slots = append(slots, s)
	}
	return slots
}

// TabbedLayout lays out units for the combined tabbed view. Slot numbering continues
// across units: unit N starts at the sum of the class counts of units 0..N-1.
func TabbedLayout(units []roster.Unit) [][]Slot {
	out := make([][]Slot, 0, len(units))
	next := 0
	for _, u := range units {
		out = append(out, Layout(u, BaseYTabbed, next))
		next += u.Count()
	}
	return out
}

// TabX returns the horizontal origin of tab button n.
func TabX(n int) int {
	return FirstTabX + n*TabSpacing
}
