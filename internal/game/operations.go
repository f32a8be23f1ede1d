package game

import (
	"fmt"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
)

// BuyUnit spends the unit price of the current kingdom on a floating
// level-1 unit, or upgrades the floating unit by one level.
func (a *Arbiter) BuyUnit() error {
	return a.perform("buy_unit", a.buyUnit)
}

func (a *Arbiter) buyUnit() error {
	k := a.CurrentKingdom()
	if k == nil {
		return core.ErrNoKingdomSelected
	}
	if a.selection.IsTower() {
		return core.ErrSelectionConflict
	}
	if a.selection.IsUnit() && a.selection.Level >= a.rules.UnitMaxLevel {
		return core.ErrMaxLevel
	}
	if k.Gold() < a.rules.UnitPrice {
		return core.ErrInsufficientGold
	}

	a.world.AddGold(k.ID(), -a.rules.UnitPrice)
	next := floatingUnit(1, false)
	if a.selection.IsUnit() {
		next = floatingUnit(a.selection.Level+1, a.selection.Played)
	}
	a.setSelection(next)
	a.emit(events.NewUnitBoughtEvent(a.gameID, a.meta(), k.ID(), next.Level, a.rules.UnitPrice))
	return nil
}

// BuyTower spends the tower price of the current kingdom on a floating tower
func (a *Arbiter) BuyTower() error {
	return a.perform("buy_tower", func() error {
		k := a.CurrentKingdom()
		if k == nil {
			return core.ErrNoKingdomSelected
		}
		if !a.selection.IsEmpty() {
			return core.ErrSelectionConflict
		}
		if k.Gold() < a.rules.TowerPrice {
			return core.ErrInsufficientGold
		}

		a.world.AddGold(k.ID(), -a.rules.TowerPrice)
		a.setSelection(floatingTower())
		a.emit(events.NewTowerBoughtEvent(a.gameID, a.meta(), k.ID(), a.rules.TowerPrice))
		return nil
	})
}

// TakeUnitAt lifts an unplayed unit of the current kingdom into the selection
func (a *Arbiter) TakeUnitAt(c core.HexCoord) error {
	return a.perform("take_unit", func() error {
		return a.takeUnitAt(c)
	})
}

func (a *Arbiter) takeUnitAt(c core.HexCoord) error {
	if !a.selection.IsEmpty() {
		return core.ErrSelectionConflict
	}
	k := a.CurrentKingdom()
	if k == nil {
		return core.ErrNoKingdomSelected
	}
	h := a.world.Hex(c)
	if h == nil {
		return core.ErrUnknownHex
	}
	if !k.Contains(c) || !h.Entity().IsUnit() {
		return core.ErrIllegalTarget
	}
	if h.Entity().Played {
		return core.ErrUnitPlayed
	}

	a.setSelection(floatingUnit(h.Entity().Level, false))
	a.world.SetEntity(c, core.Empty)
	return nil
}

// PlaceAt commits the selection to the hex at c. With nothing selected it
// does nothing.
func (a *Arbiter) PlaceAt(c core.HexCoord) error {
	return a.perform("place", func() error {
		return a.placeAt(c)
	})
}

func (a *Arbiter) placeAt(c core.HexCoord) error {
	switch a.selection.Kind {
	case SelectNone:
		return nil
	case SelectUnit:
		return a.placeUnitAt(c)
	case SelectTower:
		return a.placeTowerAt(c)
	default:
		panic(fmt.Sprintf("game: unhandled selection %v", a.selection))
	}
}

// SmartAction is the single entry point for direct manipulation: with a
// selection it places it, otherwise it selects the kingdom under c and picks
// up its unit when that unit can still act.
func (a *Arbiter) SmartAction(c core.HexCoord) error {
	return a.perform("smart_action", func() error {
		if !a.selection.IsEmpty() {
			return a.placeAt(c)
		}
		h := a.world.Hex(c)
		if h == nil {
			return core.ErrUnknownHex
		}
		if h.Kingdom() != a.currentKingdom {
			if err := a.setCurrentKingdom(h.Kingdom()); err != nil {
				return err
			}
			if h.Entity().IsUnit() && !h.Entity().Played {
				return a.takeUnitAt(c)
			}
			return nil
		}
		if h.Entity().IsUnit() {
			return a.takeUnitAt(c)
		}
		return nil
	})
}

func (a *Arbiter) placeUnitAt(c core.HexCoord) error {
	k := a.CurrentKingdom()
	if k == nil {
		return core.ErrNoKingdomSelected
	}
	if !a.world.Has(c) {
		return core.ErrUnknownHex
	}
	level, played := a.selection.Level, a.selection.Played

	if k.Contains(c) {
		if err := a.legalMoves.ValidateReinforce(a.world, k, c, level); err != nil {
			return err
		}
		a.setSelection(NoSelection)
		a.reinforce(k, c, level, played)
		return nil
	}

	if err := a.legalMoves.ValidateCapture(a.world, k, c, level); err != nil {
		return err
	}
	a.setSelection(NoSelection)
	a.capture(k, c, level)
	return nil
}

func (a *Arbiter) placeTowerAt(c core.HexCoord) error {
	k := a.CurrentKingdom()
	if k == nil {
		return core.ErrNoKingdomSelected
	}
	h := a.world.Hex(c)
	if h == nil {
		return core.ErrUnknownHex
	}
	if !k.Contains(c) {
		return core.ErrIllegalTarget
	}
	if !h.Entity().IsEmpty() {
		return core.ErrReservedHex
	}

	a.setSelection(NoSelection)
	a.world.SetEntity(c, core.NewTower())
	a.emit(events.NewTowerPlacedEvent(a.gameID, a.meta(), c))
	return nil
}

// MoveUnit moves the unplayed unit on from to a hex of its move zone. The
// unit is always spent by the move.
func (a *Arbiter) MoveUnit(from, to core.HexCoord) error {
	return a.perform("move_unit", func() error {
		src := a.world.Hex(from)
		if src == nil || !a.world.Has(to) {
			return core.ErrUnknownHex
		}
		if src.Owner() != a.CurrentPlayer() || !src.HasKingdom() {
			return core.ErrNotOwnKingdom
		}
		unit := src.Entity()
		if !unit.IsUnit() {
			return core.ErrIllegalTarget
		}
		if unit.Played {
			return core.ErrUnitPlayed
		}
		if !containsCoord(a.legalMoves.UnitZone(a.world, from), to) {
			return core.ErrOutsideMoveZone
		}

		k := a.world.Kingdom(src.Kingdom())
		a.world.SetEntity(from, core.Empty)
		if k.Contains(to) {
			a.reinforce(k, to, unit.Level, true)
		} else {
			a.capture(k, to, unit.Level)
		}
		return nil
	})
}

// BuyUnitTowardsHex buys a unit of level for kingdom and commits it to
// target in one step. Inside the kingdom the unit reinforces, outside it
// captures; either way it arrives played.
func (a *Arbiter) BuyUnitTowardsHex(kingdom core.KingdomID, target core.HexCoord, level int) error {
	return a.perform("buy_unit_towards_hex", func() error {
		k, err := a.ownKingdom(kingdom)
		if err != nil {
			return err
		}
		if level < 1 {
			return core.ErrIllegalTarget
		}
		if level > a.rules.UnitMaxLevel {
			return core.ErrMaxLevel
		}
		if !a.world.Has(target) {
			return core.ErrUnknownHex
		}
		inside := k.Contains(target)
		if inside {
			err = a.legalMoves.ValidateReinforce(a.world, k, target, level)
		} else {
			err = a.legalMoves.ValidateCapture(a.world, k, target, level)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrOutsideMoveZone, err)
		}
		cost := a.rules.UnitCost(level)
		if k.Gold() < cost {
			return core.ErrInsufficientGold
		}

		a.world.AddGold(k.ID(), -cost)
		a.emit(events.NewUnitBoughtEvent(a.gameID, a.meta(), k.ID(), level, cost))
		if inside {
			a.reinforce(k, target, level, true)
		} else {
			a.capture(k, target, level)
		}
		return nil
	})
}

// BuyTowerAt buys a tower for kingdom and builds it on an empty hex of it
func (a *Arbiter) BuyTowerAt(kingdom core.KingdomID, target core.HexCoord) error {
	return a.perform("buy_tower_at", func() error {
		k, err := a.ownKingdom(kingdom)
		if err != nil {
			return err
		}
		h := a.world.Hex(target)
		if h == nil {
			return core.ErrUnknownHex
		}
		if !k.Contains(target) {
			return core.ErrIllegalTarget
		}
		if !h.Entity().IsEmpty() {
			return core.ErrReservedHex
		}
		if k.Gold() < a.rules.TowerPrice {
			return core.ErrInsufficientGold
		}

		a.world.AddGold(k.ID(), -a.rules.TowerPrice)
		a.world.SetEntity(target, core.NewTower())
		a.emit(events.NewTowerBoughtEvent(a.gameID, a.meta(), k.ID(), a.rules.TowerPrice))
		a.emit(events.NewTowerPlacedEvent(a.gameID, a.meta(), target))
		return nil
	})
}

func (a *Arbiter) ownKingdom(id core.KingdomID) (*core.Kingdom, error) {
	k := a.world.Kingdom(id)
	if k == nil {
		return nil, core.ErrNoKingdomSelected
	}
	if k.Player() != a.CurrentPlayer() {
		return nil, core.ErrNotOwnKingdom
	}
	return k, nil
}

// reinforce puts a unit of level on c inside k. Legality has been checked.
// Merging keeps the standing unit's played flag unless played forces it;
// clearing a tree or a grave spends the unit.
func (a *Arbiter) reinforce(k *core.Kingdom, c core.HexCoord, level int, played bool) {
	existing := a.world.Hex(c).Entity()
	merged := existing.IsUnit()

	var unit core.Entity
	switch existing.Kind {
	case core.EntityUnit:
		unit = core.NewUnit(existing.Level + level).WithPlayed(existing.Played || played)
	case core.EntityTree:
		a.world.AddGold(k.ID(), a.rules.TreeClearGold)
		unit = core.NewUnit(level).WithPlayed(true)
	case core.EntityGrave:
		unit = core.NewUnit(level).WithPlayed(true)
	case core.EntityNone:
		unit = core.NewUnit(level).WithPlayed(played)
	default:
		panic(fmt.Sprintf("game: reinforce onto %v", existing))
	}

	a.world.SetEntity(c, unit)
	a.emit(events.NewUnitPlacedEvent(a.gameID, a.meta(), c, unit, merged))
}

// capture takes c for k with a unit of level and emits what the territory
// pass changed. Legality has been checked.
func (a *Arbiter) capture(k *core.Kingdom, c core.HexCoord, level int) {
	res := a.territory.Capture(a.world, k.ID(), c, core.NewUnit(level))

	if res.Merge.Survivor != core.NoKingdom {
		for _, id := range res.Merge.Absorbed {
			if id == a.currentKingdom {
				a.setCurrentKingdomID(res.Merge.Survivor)
			}
		}
	}

	a.emitCapture(res, level)
}

func (a *Arbiter) emitCapture(res rules.CaptureResult, level int) {
	meta := a.meta()
	a.emit(events.NewHexCapturedEvent(a.gameID, meta, res.Target, level, res.PreviousOwner, res.CapitalTaken))
	if len(res.Merge.Absorbed) > 0 {
		a.emit(events.NewKingdomsMergedEvent(a.gameID, meta, res.Merge.Survivor, res.Merge.Absorbed, res.Merge.GoldGained))
	}
	for _, s := range res.Splits {
		a.emit(events.NewKingdomSplitEvent(a.gameID, meta, s.Kingdom, s.Created, len(s.Stranded)))
	}
	for _, id := range res.Dissolved {
		a.emit(events.NewKingdomDestroyedEvent(a.gameID, meta, id, "dissolved"))
	}
	for _, s := range res.Splits {
		if s.Destroyed {
			a.emit(events.NewKingdomDestroyedEvent(a.gameID, meta, s.Kingdom, "split"))
		}
	}
	for _, cr := range res.Capitals {
		a.emit(events.NewCapitalRebuiltEvent(a.gameID, meta, cr.Kingdom, cr.At))
	}
}

func containsCoord(coords []core.HexCoord, c core.HexCoord) bool {
	for _, x := range coords {
		if x == c {
			return true
		}
	}
	return false
}
