package core

import "fmt"

// HexCoord is an axial hex coordinate. The third cube component is derived,
// so q + r + s == 0 always holds.
type HexCoord struct {
	Q, R int
}

// NewHexCoord creates a coordinate from its axial components
func NewHexCoord(q, r int) HexCoord {
	return HexCoord{Q: q, R: r}
}

// NewHexCoordCube creates a coordinate from cube components. It panics when
// q + r + s != 0.
func NewHexCoordCube(q, r, s int) HexCoord {
	if q+r+s != 0 {
		panic(fmt.Sprintf("invalid cube coordinate (%d,%d,%d)", q, r, s))
	}
	return HexCoord{Q: q, R: r}
}

// S returns the derived cube component
func (c HexCoord) S() int {
	return -c.Q - c.R
}

// HexDirections is the fixed neighbour enumeration order used everywhere a
// deterministic traversal matters (merge tie-breaks, flood fills, AI scans):
// east, north-east, north-west, west, south-west, south-east.
var HexDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Add returns the component-wise sum of two coordinates
func (c HexCoord) Add(other HexCoord) HexCoord {
	return HexCoord{Q: c.Q + other.Q, R: c.R + other.R}
}

// Neighbors returns the six adjacent coordinates in HexDirections order
func (c HexCoord) Neighbors() [6]HexCoord {
	var out [6]HexCoord
	for i, d := range HexDirections {
		out[i] = c.Add(d)
	}
	return out
}

// DistanceTo returns the number of hex steps between two coordinates
func (c HexCoord) DistanceTo(other HexCoord) int {
	dq := abs(c.Q - other.Q)
	dr := abs(c.R - other.R)
	ds := abs(c.S() - other.S())
	return max(dq, dr, ds)
}

// IsAdjacentTo reports whether the coordinates are one step apart
func (c HexCoord) IsAdjacentTo(other HexCoord) bool {
	return c.DistanceTo(other) == 1
}

// Less orders coordinates row-major (r, then q). Used for stable iteration.
func (c HexCoord) Less(other HexCoord) bool {
	if c.R != other.R {
		return c.R < other.R
	}
	return c.Q < other.Q
}

// String returns a string representation of the coordinate
func (c HexCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
