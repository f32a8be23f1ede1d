package core

import "fmt"

// EntityKind tags which variant an Entity holds.
type EntityKind int

const (
	EntityNone EntityKind = iota
	EntityUnit
	EntityTower
	EntityCapital
	EntityTree
	EntityGrave
)

// String returns the string representation of an entity kind
func (k EntityKind) String() string {
	switch k {
	case EntityNone:
		return "none"
	case EntityUnit:
		return "unit"
	case EntityTower:
		return "tower"
	case EntityCapital:
		return "capital"
	case EntityTree:
		return "tree"
	case EntityGrave:
		return "grave"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// TreeKind distinguishes trees by the terrain they spread over.
type TreeKind int

const (
	TreeCoastal TreeKind = iota
	TreeContinental
)

func (k TreeKind) String() string {
	if k == TreeCoastal {
		return "coastal"
	}
	return "continental"
}

// Fixed defensive levels of buildings.
const (
	TowerLevel   = 2
	CapitalLevel = 1
)

// Entity is the single occupant of a hex. The zero value is an empty hex.
// Level and Played are only meaningful for units, Tree only for trees.
type Entity struct {
	Kind   EntityKind
	Level  int
	Played bool
	Tree   TreeKind
}

// Empty is the absence of an entity.
var Empty = Entity{}

// NewUnit returns a unit of the given level that has not moved this turn.
func NewUnit(level int) Entity {
	return Entity{Kind: EntityUnit, Level: level}
}

// NewTower returns a tower
func NewTower() Entity { return Entity{Kind: EntityTower} }

// NewCapital returns a capital
func NewCapital() Entity { return Entity{Kind: EntityCapital} }

// NewTree returns a tree of the given kind
func NewTree(kind TreeKind) Entity { return Entity{Kind: EntityTree, Tree: kind} }

// NewGrave returns a grave
func NewGrave() Entity { return Entity{Kind: EntityGrave} }

func (e Entity) IsEmpty() bool   { return e.Kind == EntityNone }
func (e Entity) IsUnit() bool    { return e.Kind == EntityUnit }
func (e Entity) IsTower() bool   { return e.Kind == EntityTower }
func (e Entity) IsCapital() bool { return e.Kind == EntityCapital }
func (e Entity) IsTree() bool    { return e.Kind == EntityTree }
func (e Entity) IsGrave() bool   { return e.Kind == EntityGrave }

// IsBuilding reports whether the entity is a tower or a capital. Buildings
// reserve their hex against reinforcement.
func (e Entity) IsBuilding() bool {
	return e.Kind == EntityTower || e.Kind == EntityCapital
}

// DefenseLevel is the protection the entity projects onto its hex and the
// same-owner neighbours. Trees, graves and empty hexes project none.
func (e Entity) DefenseLevel() int {
	switch e.Kind {
	case EntityUnit:
		return e.Level
	case EntityTower:
		return TowerLevel
	case EntityCapital:
		return CapitalLevel
	case EntityNone, EntityTree, EntityGrave:
		return 0
	default:
		panic(fmt.Sprintf("unhandled entity kind %v", e.Kind))
	}
}

// WithPlayed returns a copy of the unit with its played flag set
func (e Entity) WithPlayed(played bool) Entity {
	e.Played = played
	return e
}

// String returns a string representation of the entity
func (e Entity) String() string {
	switch e.Kind {
	case EntityUnit:
		return fmt.Sprintf("unit(%d,played=%t)", e.Level, e.Played)
	case EntityTree:
		return fmt.Sprintf("tree(%s)", e.Tree)
	default:
		return e.Kind.String()
	}
}
