package ai

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
)

// towerWorthyNeighbours is how many unguarded allied neighbours a hex needs
// before a tower is built on it
const towerWorthyNeighbours = 5

func firstTree(w *core.World, coords []core.HexCoord, kind core.TreeKind) (core.HexCoord, bool) {
	for _, c := range coords {
		e := w.Hex(c).Entity()
		if e.IsTree() && e.Tree == kind {
			return c, true
		}
	}
	return core.HexCoord{}, false
}

// foreignHexes keeps the coords outside k
func foreignHexes(k *core.Kingdom, coords []core.HexCoord) []core.HexCoord {
	var out []core.HexCoord
	for _, c := range coords {
		if !k.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// enemyHexes keeps the coords not owned by player
func enemyHexes(w *core.World, player core.PlayerID, coords []core.HexCoord) []core.HexCoord {
	var out []core.HexCoord
	for _, c := range coords {
		if w.Hex(c).Owner() != player {
			out = append(out, c)
		}
	}
	return out
}

// mostAttractive picks the capture target for a unit of level. Strong
// units go for towers and the hexes they guard; otherwise the hex most
// surrounded by the attacker's land wins, first one on ties.
func mostAttractive(w *core.World, targets []core.HexCoord, k *core.Kingdom, level int) core.HexCoord {
	if level >= 3 {
		for _, c := range targets {
			if w.Hex(c).Entity().IsTower() {
				return c
			}
		}
		for _, c := range targets {
			if isProtectedByTower(w, c) {
				return c
			}
		}
	}

	best, bestAllure := targets[0], -1
	for _, c := range targets {
		allure := 0
		for _, n := range w.Neighbors(c) {
			if n.Owner() == k.Player() {
				allure++
			}
		}
		if allure > bestAllure {
			best, bestAllure = c, allure
		}
	}
	return best
}

func isProtectedByTower(w *core.World, c core.HexCoord) bool {
	if w.Hex(c).Entity().IsTower() {
		return true
	}
	for _, n := range w.SameOwnerNeighbors(c) {
		if n.Entity().IsTower() {
			return true
		}
	}
	return false
}

// isPerimeter reports whether c touches a hex outside k
func isPerimeter(w *core.World, k *core.Kingdom, c core.HexCoord) bool {
	for _, n := range w.Neighbors(c) {
		if !k.Contains(n.Coord()) {
			return true
		}
	}
	return false
}

// bestDefence picks the empty border hex of k in zone where a unit of
// level would raise the protection of the most kingdom hexes
func bestDefence(w *core.World, k *core.Kingdom, zone []core.HexCoord, level int) (core.HexCoord, bool) {
	var best core.HexCoord
	bestGain := 0
	for _, c := range zone {
		if !k.Contains(c) || !w.Hex(c).Entity().IsEmpty() || !isPerimeter(w, k, c) {
			continue
		}
		gain := 0
		if rules.Protection(w, c) < level {
			gain++
		}
		for _, n := range w.SameOwnerNeighbors(c) {
			if k.Contains(n.Coord()) && rules.Protection(w, n.Coord()) < level {
				gain++
			}
		}
		if gain > bestGain {
			best, bestGain = c, gain
		}
	}
	return best, bestGain > 0
}

// hexNeedingTower returns the first candidate guarding enough allied
// neighbours that no tower covers yet
func hexNeedingTower(w *core.World, candidates []core.HexCoord) (core.HexCoord, bool) {
	for _, c := range candidates {
		unguarded := 0
		for _, n := range w.SameOwnerNeighbors(c) {
			if !isProtectedByTower(w, n.Coord()) {
				unguarded++
			}
		}
		if unguarded >= towerWorthyNeighbours {
			return c, true
		}
	}
	return core.HexCoord{}, false
}
