package events

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted      = "game.started"
	TypeTurnStarted      = "turn.started"
	TypeTurnEnded        = "turn.ended"
	TypeUnitBought       = "unit.bought"
	TypeTowerBought      = "tower.bought"
	TypeUnitPlaced       = "unit.placed"
	TypeTowerPlaced      = "tower.placed"
	TypeHexCaptured      = "hex.captured"
	TypeKingdomsMerged   = "kingdom.merged"
	TypeKingdomSplit     = "kingdom.split"
	TypeKingdomDestroyed = "kingdom.destroyed"
	TypeCapitalRebuilt   = "capital.rebuilt"
	TypeUnitsStarved     = "units.starved"
	TypeTreesGrown       = "trees.grown"
	TypePlayerWon        = "player.won"
	TypeActionRejected   = "action.rejected"
	TypeHistoryUndone    = "history.undone"
	TypeHistoryRedone    = "history.redone"
	TypeStateTransition  = "state.transition"
)

// EventMetadata contains the match position an event happened at
type EventMetadata struct {
	PlayerID core.PlayerID `json:"player_id"`
	Turn     int           `json:"turn"`
}

// GameStartedEvent is published when a match begins
type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	Hexes      int
	Kingdoms   int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, numPlayers, hexes, kingdoms int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		NumPlayers: numPlayers,
		Hexes:      hexes,
		Kingdoms:   kingdoms,
	}
}

// TurnStartedEvent is published when a player receives control
type TurnStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, playerID core.PlayerID, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
	}
}

// TurnEndedEvent is published when a player ends their turn
type TurnEndedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	ActionsCount int
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, playerID core.PlayerID, turn, actions int) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:    newBase(TypeTurnEnded, gameID),
		Metadata:     EventMetadata{PlayerID: playerID, Turn: turn},
		ActionsCount: actions,
	}
}

// UnitBoughtEvent is published when gold is spent on a unit or an upgrade
type UnitBoughtEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	Level    int
	Cost     int
}

// NewUnitBoughtEvent creates a new UnitBoughtEvent
func NewUnitBoughtEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, level, cost int) *UnitBoughtEvent {
	return &UnitBoughtEvent{
		BaseEvent: newBase(TypeUnitBought, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		Level:     level,
		Cost:      cost,
	}
}

// TowerBoughtEvent is published when gold is spent on a tower
type TowerBoughtEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	Cost     int
}

// NewTowerBoughtEvent creates a new TowerBoughtEvent
func NewTowerBoughtEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, cost int) *TowerBoughtEvent {
	return &TowerBoughtEvent{
		BaseEvent: newBase(TypeTowerBought, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		Cost:      cost,
	}
}

// UnitPlacedEvent is published when a unit lands inside its own kingdom
type UnitPlacedEvent struct {
	BaseEvent
	Metadata EventMetadata
	At       core.HexCoord
	Unit     core.Entity
	Merged   bool
}

// NewUnitPlacedEvent creates a new UnitPlacedEvent
func NewUnitPlacedEvent(gameID string, meta EventMetadata, at core.HexCoord, unit core.Entity, merged bool) *UnitPlacedEvent {
	return &UnitPlacedEvent{
		BaseEvent: newBase(TypeUnitPlaced, gameID),
		Metadata:  meta,
		At:        at,
		Unit:      unit,
		Merged:    merged,
	}
}

// TowerPlacedEvent is published when a tower is built
type TowerPlacedEvent struct {
	BaseEvent
	Metadata EventMetadata
	At       core.HexCoord
}

// NewTowerPlacedEvent creates a new TowerPlacedEvent
func NewTowerPlacedEvent(gameID string, meta EventMetadata, at core.HexCoord) *TowerPlacedEvent {
	return &TowerPlacedEvent{
		BaseEvent: newBase(TypeTowerPlaced, gameID),
		Metadata:  meta,
		At:        at,
	}
}

// HexCapturedEvent is published when land changes hands
type HexCapturedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	At            core.HexCoord
	Level         int
	PreviousOwner core.PlayerID
	CapitalTaken  bool
}

// NewHexCapturedEvent creates a new HexCapturedEvent
func NewHexCapturedEvent(gameID string, meta EventMetadata, at core.HexCoord, level int, previousOwner core.PlayerID, capitalTaken bool) *HexCapturedEvent {
	return &HexCapturedEvent{
		BaseEvent:     newBase(TypeHexCaptured, gameID),
		Metadata:      meta,
		At:            at,
		Level:         level,
		PreviousOwner: previousOwner,
		CapitalTaken:  capitalTaken,
	}
}

// KingdomsMergedEvent is published when allied kingdoms fuse
type KingdomsMergedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Survivor   core.KingdomID
	Absorbed   []core.KingdomID
	GoldGained int
}

// NewKingdomsMergedEvent creates a new KingdomsMergedEvent
func NewKingdomsMergedEvent(gameID string, meta EventMetadata, survivor core.KingdomID, absorbed []core.KingdomID, gold int) *KingdomsMergedEvent {
	return &KingdomsMergedEvent{
		BaseEvent:  newBase(TypeKingdomsMerged, gameID),
		Metadata:   meta,
		Survivor:   survivor,
		Absorbed:   absorbed,
		GoldGained: gold,
	}
}

// KingdomSplitEvent is published when a capture cuts a kingdom apart
type KingdomSplitEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	Created  []core.KingdomID
	Stranded int
}

// NewKingdomSplitEvent creates a new KingdomSplitEvent
func NewKingdomSplitEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, created []core.KingdomID, stranded int) *KingdomSplitEvent {
	return &KingdomSplitEvent{
		BaseEvent: newBase(TypeKingdomSplit, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		Created:   created,
		Stranded:  stranded,
	}
}

// KingdomDestroyedEvent is published when a kingdom ceases to exist
type KingdomDestroyedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	Reason   string
}

// NewKingdomDestroyedEvent creates a new KingdomDestroyedEvent
func NewKingdomDestroyedEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, reason string) *KingdomDestroyedEvent {
	return &KingdomDestroyedEvent{
		BaseEvent: newBase(TypeKingdomDestroyed, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		Reason:    reason,
	}
}

// CapitalRebuiltEvent is published when a kingdom gets a new capital
type CapitalRebuiltEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	At       core.HexCoord
}

// NewCapitalRebuiltEvent creates a new CapitalRebuiltEvent
func NewCapitalRebuiltEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, at core.HexCoord) *CapitalRebuiltEvent {
	return &CapitalRebuiltEvent{
		BaseEvent: newBase(TypeCapitalRebuilt, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		At:        at,
	}
}

// UnitsStarvedEvent is published when a kingdom cannot pay its upkeep
type UnitsStarvedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Kingdom  core.KingdomID
	Units    int
}

// NewUnitsStarvedEvent creates a new UnitsStarvedEvent
func NewUnitsStarvedEvent(gameID string, meta EventMetadata, kingdom core.KingdomID, units int) *UnitsStarvedEvent {
	return &UnitsStarvedEvent{
		BaseEvent: newBase(TypeUnitsStarved, gameID),
		Metadata:  meta,
		Kingdom:   kingdom,
		Units:     units,
	}
}

// TreesGrownEvent is published after vegetation spreads
type TreesGrownEvent struct {
	BaseEvent
	Metadata EventMetadata
	Grown    int
	Rotted   int
}

// NewTreesGrownEvent creates a new TreesGrownEvent
func NewTreesGrownEvent(gameID string, meta EventMetadata, grown, rotted int) *TreesGrownEvent {
	return &TreesGrownEvent{
		BaseEvent: newBase(TypeTreesGrown, gameID),
		Metadata:  meta,
		Grown:     grown,
		Rotted:    rotted,
	}
}

// PlayerWonEvent is published when one kingdom owns every hex
type PlayerWonEvent struct {
	BaseEvent
	Metadata EventMetadata
}

// NewPlayerWonEvent creates a new PlayerWonEvent
func NewPlayerWonEvent(gameID string, playerID core.PlayerID, turn int) *PlayerWonEvent {
	return &PlayerWonEvent{
		BaseEvent: newBase(TypePlayerWon, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
	}
}

// ActionRejectedEvent is published when an operation fails its checks
type ActionRejectedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Operation string
	Category  string
	Reason    string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, meta EventMetadata, operation string, err error) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Metadata:  meta,
		Operation: operation,
		Category:  core.Classify(err).String(),
		Reason:    err.Error(),
	}
}

// HistoryEvent is published when an operation is undone or redone
type HistoryEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Operation string
}

// NewHistoryUndoneEvent creates a HistoryEvent for an undo
func NewHistoryUndoneEvent(gameID string, meta EventMetadata, operation string) *HistoryEvent {
	return &HistoryEvent{BaseEvent: newBase(TypeHistoryUndone, gameID), Metadata: meta, Operation: operation}
}

// NewHistoryRedoneEvent creates a HistoryEvent for a redo
func NewHistoryRedoneEvent(gameID string, meta EventMetadata, operation string) *HistoryEvent {
	return &HistoryEvent{BaseEvent: newBase(TypeHistoryRedone, gameID), Metadata: meta, Operation: operation}
}

// StateTransitionEvent is published when the turn state machine changes phase
type StateTransitionEvent struct {
	BaseEvent
	FromState string
	ToState   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromState, toState, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromState: fromState,
		ToState:   toState,
		Reason:    reason,
	}
}
