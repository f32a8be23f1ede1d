package ai

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Difficulty names accepted by NewStrategy
const (
	DifficultyEasy = "easy"
	DifficultyHard = "hard"
)

// Strategy plans and submits the actions of one kingdom for the current
// turn. Returning an error abandons the rest of that kingdom's plan.
type Strategy interface {
	Name() string
	PlayKingdom(t *Turn, id core.KingdomID) error
}

// NewStrategy returns the strategy for a difficulty name
func NewStrategy(difficulty string) (Strategy, error) {
	switch strings.ToLower(difficulty) {
	case DifficultyEasy:
		return NewEasy(), nil
	case DifficultyHard, "":
		return NewHard(), nil
	default:
		return nil, fmt.Errorf("unknown AI difficulty %q", difficulty)
	}
}

// heuristic is the shared policy. The knobs make it sloppier for Easy.
type heuristic struct {
	name string
	// randomMoves is the chance a unit picks a random zone hex
	randomMoves float64
	buildTowers bool
	// mergeChance is the chance merges are attempted at all this turn
	mergeChance     float64
	basicMergesOnly bool
}

// NewHard returns the strongest policy
func NewHard() Strategy {
	return &heuristic{name: DifficultyHard, buildTowers: true, mergeChance: 1}
}

// NewEasy returns a policy that wanders half the time, never builds towers
// and rarely merges
func NewEasy() Strategy {
	return &heuristic{name: DifficultyEasy, randomMoves: 0.5, mergeChance: 0.25, basicMergesOnly: true}
}

func (h *heuristic) Name() string { return h.name }

func (h *heuristic) PlayKingdom(t *Turn, id core.KingdomID) error {
	if err := h.moveUnits(t, id); err != nil {
		return err
	}
	if err := h.spendGold(t, id); err != nil {
		return err
	}
	return h.mergeUnits(t, id)
}

func (h *heuristic) moveUnits(t *Turn, id core.KingdomID) error {
	k := t.Kingdom(id)
	if k == nil {
		return nil
	}
	for _, c := range movableUnits(k) {
		k = t.Kingdom(id)
		if k == nil {
			return nil
		}
		if !isMovable(k, c) {
			continue
		}
		if err := h.decideAboutUnit(t, k, c); err != nil {
			return err
		}
	}
	return nil
}

func (h *heuristic) decideAboutUnit(t *Turn, k *core.Kingdom, from core.HexCoord) error {
	w := t.World()
	level := w.Hex(from).Entity().Level
	zone := t.Legal().UnitZone(w, from)
	if len(zone) == 0 {
		return nil
	}

	if h.randomMoves > 0 && t.Rand().Float64() < h.randomMoves {
		if c, ok := firstTree(w, zone, core.TreeCoastal); ok {
			return t.Move(from, c)
		}
		if c, ok := firstTree(w, zone, core.TreeContinental); ok {
			return t.Move(from, c)
		}
		foreign := foreignHexes(k, zone)
		if len(foreign) == 0 {
			return nil
		}
		return t.Move(from, foreign[t.Rand().Intn(len(foreign))])
	}

	if level <= 2 {
		if c, ok := firstTree(w, zone, core.TreeCoastal); ok {
			return t.Move(from, c)
		}
	}
	if level <= 1 {
		if c, ok := firstTree(w, zone, core.TreeContinental); ok {
			return t.Move(from, c)
		}
	}

	if targets := enemyHexes(w, t.Player(), zone); len(targets) > 0 {
		return t.Move(from, mostAttractive(w, targets, k, level))
	}

	if isPerimeter(w, k, from) {
		return nil
	}
	if c, ok := bestDefence(w, k, zone, level); ok {
		return t.Move(from, c)
	}
	return nil
}

func (h *heuristic) spendGold(t *Turn, id core.KingdomID) error {
	if h.buildTowers {
		if err := h.buildTowersWhereNeeded(t, id); err != nil {
			return err
		}
	}
	if err := h.buyOnCoastalTrees(t, id); err != nil {
		return err
	}
	if err := h.buyAttackers(t, id); err != nil {
		return err
	}
	return h.kickstart(t, id)
}

func (h *heuristic) buildTowersWhereNeeded(t *Turn, id core.KingdomID) error {
	for {
		k := t.Kingdom(id)
		if k == nil || k.Gold() < t.Rules().TowerPrice {
			return nil
		}
		c, ok := hexNeedingTower(t.World(), t.Legal().TowerZone(t.World(), k))
		if !ok {
			return nil
		}
		if err := t.BuildTower(id, c); err != nil {
			return err
		}
	}
}

func (h *heuristic) buyOnCoastalTrees(t *Turn, id core.KingdomID) error {
	for {
		k := t.Kingdom(id)
		if k == nil || !canAffordUnit(t.Rules(), k, 1) {
			return nil
		}
		c, ok := firstTree(t.World(), k.Coords(), core.TreeCoastal)
		if !ok {
			return nil
		}
		if err := t.Buy(id, c, 1); err != nil {
			return err
		}
	}
}

// buyAttackers spends on captures, the strongest affordable unit first
func (h *heuristic) buyAttackers(t *Turn, id core.KingdomID) error {
	for level := t.Rules().UnitMaxLevel; level >= 1; level-- {
		for {
			k := t.Kingdom(id)
			if k == nil {
				return nil
			}
			if !canAffordUnit(t.Rules(), k, level) {
				break
			}
			targets := t.Legal().AttackZone(t.World(), k, level)
			if len(targets) == 0 {
				break
			}
			if err := t.Buy(id, mostAttractive(t.World(), targets, k, level), level); err != nil {
				return err
			}
		}
	}
	return nil
}

// kickstart lets a kingdom without units attack even when the upkeep is
// not covered yet, otherwise tree-choked kingdoms never recover.
func (h *heuristic) kickstart(t *Turn, id core.KingdomID) error {
	k := t.Kingdom(id)
	if k == nil || len(k.Units()) > 0 || k.Gold() < t.Rules().UnitCost(1) {
		return nil
	}
	targets := t.Legal().AttackZone(t.World(), k, 1)
	if len(targets) == 0 {
		return nil
	}
	return t.Buy(id, mostAttractive(t.World(), targets, k, 1), 1)
}

func (h *heuristic) mergeUnits(t *Turn, id core.KingdomID) error {
	if h.mergeChance < 1 && t.Rand().Float64() >= h.mergeChance {
		return nil
	}
	k := t.Kingdom(id)
	if k == nil {
		return nil
	}
	for _, from := range movableUnits(k) {
		k = t.Kingdom(id)
		if k == nil {
			return nil
		}
		if !isMovable(k, from) {
			continue
		}
		if err := h.tryMerge(t, k, from); err != nil {
			return err
		}
	}
	return nil
}

func (h *heuristic) tryMerge(t *Turn, k *core.Kingdom, from core.HexCoord) error {
	w := t.World()
	unit := w.Hex(from).Entity()
	for _, c := range t.Legal().UnitZone(w, from) {
		other := w.Hex(c).Entity()
		if !k.Contains(c) || !other.IsUnit() {
			continue
		}
		if h.basicMergesOnly && (unit.Level != 1 || other.Level != 1) {
			continue
		}
		if !canAffordMerge(k, unit.Level, other.Level) {
			continue
		}
		return t.Move(from, c)
	}
	return nil
}

// movableUnits lists the unplayed units of k
func movableUnits(k *core.Kingdom) []core.HexCoord {
	var out []core.HexCoord
	for _, h := range k.Units() {
		if !h.Entity().Played {
			out = append(out, h.Coord())
		}
	}
	return out
}

func isMovable(k *core.Kingdom, c core.HexCoord) bool {
	if !k.Contains(c) {
		return false
	}
	for _, h := range k.Units() {
		if h.Coord() == c {
			return !h.Entity().Played
		}
	}
	return false
}

// canAffordUnit reports whether k still has a non-negative balance next
// turn after buying a unit of level
func canAffordUnit(r core.Rules, k *core.Kingdom, level int) bool {
	cost := r.UnitCost(level)
	if k.Gold() < cost {
		return false
	}
	return k.Gold()-cost+k.Income()-k.Outcome()-core.UnitUpkeep(level) >= 0
}

// canAffordMerge reports whether k keeps a non-negative balance after two
// units of the given levels merge
func canAffordMerge(k *core.Kingdom, a, b int) bool {
	delta := core.UnitUpkeep(a) + core.UnitUpkeep(b) - core.UnitUpkeep(a+b)
	return k.Gold()+k.Income()-k.Outcome()+delta >= 0
}
