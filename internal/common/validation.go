package common

import "github.com/mitchelldurbincs/openhex/internal/game/core"

// InHexagon checks whether c lies in the hexagon of the given radius
// centred on the origin
func InHexagon(c core.HexCoord, radius int) bool {
	if radius < 0 {
		return false
	}
	return Abs(c.Q) <= radius && Abs(c.R) <= radius && Abs(c.S()) <= radius
}

// HexagonSize returns the number of hexes in a hexagon of the given radius
func HexagonSize(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}
