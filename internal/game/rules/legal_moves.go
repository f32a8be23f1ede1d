package rules

import (
	"sort"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// LegalMoveCalculator answers where a unit or tower may legally go. All
// methods are pure queries over the world.
type LegalMoveCalculator struct {
	rules core.Rules
}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator(r core.Rules) *LegalMoveCalculator {
	return &LegalMoveCalculator{rules: r}
}

// Protection returns the highest defence level among the hex at c and its
// neighbours owned by the same player.
func Protection(w *core.World, c core.HexCoord) int {
	h := w.Hex(c)
	if h == nil {
		return 0
	}
	level := h.Entity().DefenseLevel()
	for _, n := range w.SameOwnerNeighbors(c) {
		level = max(level, n.Entity().DefenseLevel())
	}
	return level
}

// CanCapture reports whether a unit of level beats the given protection. A
// unit at the maximum level also wins ties.
func (l *LegalMoveCalculator) CanCapture(level, protection int) bool {
	return protection < level || level >= l.rules.UnitMaxLevel
}

// CanReinforce reports whether a unit of level may be placed on a hex of its
// own kingdom: buildings are reserved and merges may not exceed the cap.
func (l *LegalMoveCalculator) CanReinforce(h *core.Hex, level int) bool {
	e := h.Entity()
	if e.IsBuilding() {
		return false
	}
	if e.IsUnit() {
		return e.Level+level <= l.rules.UnitMaxLevel
	}
	return true
}

// IsAdjacentToKingdom reports whether c touches a hex of k without being
// part of it.
func IsAdjacentToKingdom(w *core.World, k *core.Kingdom, c core.HexCoord) bool {
	if k.Contains(c) {
		return false
	}
	for _, n := range w.Neighbors(c) {
		if k.Contains(n.Coord()) {
			return true
		}
	}
	return false
}

// ValidateCapture checks that a unit of level may take the hex at target
// from outside kingdom k.
func (l *LegalMoveCalculator) ValidateCapture(w *core.World, k *core.Kingdom, target core.HexCoord, level int) error {
	h := w.Hex(target)
	if h == nil {
		return core.ErrUnknownHex
	}
	if k.Contains(target) {
		return core.ErrIllegalTarget
	}
	if !IsAdjacentToKingdom(w, k, target) {
		return core.ErrNotAdjacent
	}
	if !l.CanCapture(level, Protection(w, target)) {
		return core.ErrProtected
	}
	return nil
}

// ValidateReinforce checks that a unit of level may be placed on target
// inside kingdom k.
func (l *LegalMoveCalculator) ValidateReinforce(w *core.World, k *core.Kingdom, target core.HexCoord, level int) error {
	h := w.Hex(target)
	if h == nil {
		return core.ErrUnknownHex
	}
	if !k.Contains(target) {
		return core.ErrIllegalTarget
	}
	e := h.Entity()
	if e.IsBuilding() {
		return core.ErrReservedHex
	}
	if e.IsUnit() && e.Level+level > l.rules.UnitMaxLevel {
		return core.ErrMaxLevel
	}
	return nil
}

// UnitZone returns the hexes the unit standing on from may move to: the
// kingdom hexes reachable within the step budget that can take it, plus the
// capturable hexes bordering that reachable area.
func (l *LegalMoveCalculator) UnitZone(w *core.World, from core.HexCoord) []core.HexCoord {
	h := w.Hex(from)
	if h == nil || !h.Entity().IsUnit() {
		return nil
	}
	k := w.Kingdom(h.Kingdom())
	if k == nil {
		return nil
	}
	level := h.Entity().Level

	reachable := l.reachable(w, k, from, l.rules.UnitMoveSteps)
	zone := make(map[core.HexCoord]struct{})
	for _, c := range reachable {
		if c != from && l.CanReinforce(w.Hex(c), level) {
			zone[c] = struct{}{}
		}
	}
	l.addCapturable(w, k, reachable, level, zone)
	return sortedCoords(zone)
}

// KingdomZone returns the hexes a unit of level freshly bought by k may be
// placed on. Purchases ignore the step budget.
func (l *LegalMoveCalculator) KingdomZone(w *core.World, k *core.Kingdom, level int) []core.HexCoord {
	zone := make(map[core.HexCoord]struct{})
	coords := k.Coords()
	for _, c := range coords {
		if l.CanReinforce(w.Hex(c), level) {
			zone[c] = struct{}{}
		}
	}
	l.addCapturable(w, k, coords, level, zone)
	return sortedCoords(zone)
}

// AttackZone returns only the capturable hexes bordering k.
func (l *LegalMoveCalculator) AttackZone(w *core.World, k *core.Kingdom, level int) []core.HexCoord {
	zone := make(map[core.HexCoord]struct{})
	l.addCapturable(w, k, k.Coords(), level, zone)
	return sortedCoords(zone)
}

// TowerZone returns the empty hexes of k
func (l *LegalMoveCalculator) TowerZone(w *core.World, k *core.Kingdom) []core.HexCoord {
	var zone []core.HexCoord
	for _, h := range k.Hexes() {
		if h.Entity().IsEmpty() {
			zone = append(zone, h.Coord())
		}
	}
	return zone
}

func (l *LegalMoveCalculator) addCapturable(w *core.World, k *core.Kingdom, from []core.HexCoord, level int, zone map[core.HexCoord]struct{}) {
	for _, c := range from {
		for _, n := range w.Neighbors(c) {
			nc := n.Coord()
			if k.Contains(nc) {
				continue
			}
			if _, seen := zone[nc]; seen {
				continue
			}
			if l.CanCapture(level, Protection(w, nc)) {
				zone[nc] = struct{}{}
			}
		}
	}
}

// reachable walks kingdom hexes breadth-first from start for at most steps.
func (l *LegalMoveCalculator) reachable(w *core.World, k *core.Kingdom, start core.HexCoord, steps int) []core.HexCoord {
	dist := map[core.HexCoord]int{start: 0}
	queue := []core.HexCoord{start}
	order := []core.HexCoord{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if dist[c] == steps {
			continue
		}
		for _, n := range w.Neighbors(c) {
			nc := n.Coord()
			if !k.Contains(nc) {
				continue
			}
			if _, seen := dist[nc]; seen {
				continue
			}
			dist[nc] = dist[c] + 1
			queue = append(queue, nc)
			order = append(order, nc)
		}
	}
	return order
}

func sortedCoords(set map[core.HexCoord]struct{}) []core.HexCoord {
	out := make([]core.HexCoord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
