package core

import "fmt"

// ActionType represents the type of action
type ActionType int

const (
	ActionMoveUnit ActionType = iota
	ActionBuyUnit
	ActionBuyTower
)

func (t ActionType) String() string {
	switch t {
	case ActionMoveUnit:
		return "move_unit"
	case ActionBuyUnit:
		return "buy_unit"
	case ActionBuyTower:
		return "buy_tower"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action is a single decision produced by a player policy. Validate performs
// the cheap static checks; the Arbiter enforces the full rules when the
// action is applied.
type Action interface {
	GetPlayerID() PlayerID
	GetType() ActionType
	Describe() string
	Validate(w *World, playerID PlayerID) error
}

// MoveUnitAction moves the unit standing on From to To.
type MoveUnitAction struct {
	PlayerID PlayerID
	From     HexCoord
	To       HexCoord
}

func (a *MoveUnitAction) GetPlayerID() PlayerID { return a.PlayerID }
func (a *MoveUnitAction) GetType() ActionType   { return ActionMoveUnit }

func (a *MoveUnitAction) Describe() string {
	return fmt.Sprintf("move from %v to %v", a.From, a.To)
}

func (a *MoveUnitAction) Validate(w *World, playerID PlayerID) error {
	if a.PlayerID != playerID {
		return ErrNotOwnKingdom
	}
	from, to := w.Hex(a.From), w.Hex(a.To)
	if from == nil || to == nil {
		return ErrUnknownHex
	}
	if from.Owner() != playerID || !from.HasKingdom() {
		return ErrNotOwnKingdom
	}
	if !from.Entity().IsUnit() {
		return ErrIllegalTarget
	}
	if from.Entity().Played {
		return ErrUnitPlayed
	}
	if a.From == a.To {
		return ErrIllegalTarget
	}
	return nil
}

// BuyUnitAction buys a unit of Level for Kingdom and commits it to Target.
type BuyUnitAction struct {
	PlayerID PlayerID
	Kingdom  KingdomID
	Target   HexCoord
	Level    int
}

func (a *BuyUnitAction) GetPlayerID() PlayerID { return a.PlayerID }
func (a *BuyUnitAction) GetType() ActionType   { return ActionBuyUnit }

func (a *BuyUnitAction) Describe() string {
	return fmt.Sprintf("buy level %d unit at %v", a.Level, a.Target)
}

func (a *BuyUnitAction) Validate(w *World, playerID PlayerID) error {
	if err := validateKingdom(w, a.PlayerID, playerID, a.Kingdom); err != nil {
		return err
	}
	if !w.Has(a.Target) {
		return ErrUnknownHex
	}
	if a.Level < 1 {
		return ErrIllegalTarget
	}
	return nil
}

// BuyTowerAction buys a tower for Kingdom and places it on Target.
type BuyTowerAction struct {
	PlayerID PlayerID
	Kingdom  KingdomID
	Target   HexCoord
}

func (a *BuyTowerAction) GetPlayerID() PlayerID { return a.PlayerID }
func (a *BuyTowerAction) GetType() ActionType   { return ActionBuyTower }

func (a *BuyTowerAction) Describe() string {
	return fmt.Sprintf("buy tower at %v", a.Target)
}

func (a *BuyTowerAction) Validate(w *World, playerID PlayerID) error {
	if err := validateKingdom(w, a.PlayerID, playerID, a.Kingdom); err != nil {
		return err
	}
	if !w.Has(a.Target) {
		return ErrUnknownHex
	}
	return nil
}

func validateKingdom(w *World, actor, playerID PlayerID, id KingdomID) error {
	if actor != playerID {
		return ErrNotOwnKingdom
	}
	k := w.Kingdom(id)
	if k == nil {
		return ErrNoKingdomSelected
	}
	if k.Player() != playerID {
		return ErrNotOwnKingdom
	}
	return nil
}
