package game

import "fmt"

// SelectionKind tags what, if anything, the current player is holding
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectUnit
	SelectTower
)

// Selection is gold already spent on a unit or tower that has not been
// committed to a hex yet.
type Selection struct {
	Kind   SelectionKind
	Level  int
	Played bool
}

// NoSelection is the empty selection
var NoSelection = Selection{}

func floatingUnit(level int, played bool) Selection {
	return Selection{Kind: SelectUnit, Level: level, Played: played}
}

func floatingTower() Selection {
	return Selection{Kind: SelectTower}
}

func (s Selection) IsEmpty() bool { return s.Kind == SelectNone }
func (s Selection) IsUnit() bool  { return s.Kind == SelectUnit }
func (s Selection) IsTower() bool { return s.Kind == SelectTower }

func (s Selection) String() string {
	switch s.Kind {
	case SelectNone:
		return "none"
	case SelectUnit:
		return fmt.Sprintf("unit(%d,played=%t)", s.Level, s.Played)
	case SelectTower:
		return "tower"
	default:
		return fmt.Sprintf("Selection(%d)", int(s.Kind))
	}
}
