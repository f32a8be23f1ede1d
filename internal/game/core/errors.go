package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoPlayer          = errors.New("no current player")
	ErrNoPlayers         = errors.New("no players configured")
	ErrNoKingdomSelected = errors.New("no kingdom selected")
	ErrNotOwnKingdom     = errors.New("kingdom does not belong to current player")
	ErrInsufficientGold  = errors.New("not enough gold")
	ErrSelectionConflict = errors.New("selection conflicts with action")
	ErrMaxLevel          = errors.New("unit level would exceed maximum")
	ErrReservedHex       = errors.New("hex is reserved by a tower or capital")
	ErrNotAdjacent       = errors.New("hex is not adjacent to kingdom")
	ErrOutsideMoveZone   = errors.New("hex is outside move zone")
	ErrIllegalTarget     = errors.New("illegal target hex")
	ErrUnknownHex        = errors.New("no such hex")
	ErrProtected         = errors.New("hex is protected at or above attacker level")
	ErrUnitPlayed        = errors.New("unit has already been played")
	ErrSelectionPending  = errors.New("selection must be placed before ending turn")
	ErrGameOver          = errors.New("game is over")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrNothingToRedo     = errors.New("nothing to redo")
)

// Category groups rejections by what the caller got wrong.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNoSelection
	CategoryGold
	CategoryConflict
	CategoryIllegalTarget
	CategoryProtection
	CategoryPlayed
	CategorySequencing
)

func (c Category) String() string {
	switch c {
	case CategoryNoSelection:
		return "no_selection"
	case CategoryGold:
		return "insufficient_gold"
	case CategoryConflict:
		return "selection_conflict"
	case CategoryIllegalTarget:
		return "illegal_target"
	case CategoryProtection:
		return "protection"
	case CategoryPlayed:
		return "unit_played"
	case CategorySequencing:
		return "sequencing"
	default:
		return "unknown"
	}
}

var categories = []struct {
	err      error
	category Category
}{
	{ErrNoPlayer, CategoryNoSelection},
	{ErrNoKingdomSelected, CategoryNoSelection},
	{ErrNotOwnKingdom, CategoryNoSelection},
	{ErrInsufficientGold, CategoryGold},
	{ErrSelectionConflict, CategoryConflict},
	{ErrMaxLevel, CategoryConflict},
	{ErrReservedHex, CategoryIllegalTarget},
	{ErrNotAdjacent, CategoryIllegalTarget},
	{ErrOutsideMoveZone, CategoryIllegalTarget},
	{ErrIllegalTarget, CategoryIllegalTarget},
	{ErrUnknownHex, CategoryIllegalTarget},
	{ErrProtected, CategoryProtection},
	{ErrUnitPlayed, CategoryPlayed},
	{ErrSelectionPending, CategorySequencing},
	{ErrGameOver, CategorySequencing},
	{ErrNothingToUndo, CategorySequencing},
	{ErrNothingToRedo, CategorySequencing},
	{ErrNoPlayers, CategorySequencing},
}

// Classify returns the rejection category of err
func Classify(err error) Category {
	for _, c := range categories {
		if errors.Is(err, c.err) {
			return c.category
		}
	}
	return CategoryUnknown
}

// ActionError wraps a failure with the action that caused it.
type ActionError struct {
	PlayerID PlayerID
	Action   string
	Err      error
}

func (e *ActionError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("player action: %v", e.Err)
	}
	return fmt.Sprintf("player %d: %s: %v", e.PlayerID, e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError adds action context to err. A nil err stays nil.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return &ActionError{PlayerID: NoPlayer, Err: err}
	}
	return &ActionError{PlayerID: action.GetPlayerID(), Action: action.Describe(), Err: err}
}

// GameStateError wraps a failure with the turn and phase it happened in.
type GameStateError struct {
	Turn  int
	Phase string
	Err   error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("game turn %d [%s]: %v", e.Turn, e.Phase, e.Err)
}

func (e *GameStateError) Unwrap() error { return e.Err }

// WrapGameStateError adds turn and phase context to err. A nil err stays nil.
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{Turn: turn, Phase: phase, Err: err}
}

// PlayerError wraps a failure with the player and operation involved.
type PlayerError struct {
	PlayerID  PlayerID
	Operation string
	Err       error
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("player %d %s: %v", e.PlayerID, e.Operation, e.Err)
}

func (e *PlayerError) Unwrap() error { return e.Err }

// WrapPlayerError adds player context to err. A nil err stays nil.
func WrapPlayerError(playerID PlayerID, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &PlayerError{PlayerID: playerID, Operation: operation, Err: err}
}

// GameError is the error returned by Arbiter operations. It records where in
// the match the rejection happened.
type GameError struct {
	Turn      int
	PlayerID  PlayerID
	Operation string
	Err       error
}

// NewGameError creates a GameError
func NewGameError(turn int, playerID PlayerID, operation string, err error) *GameError {
	return &GameError{Turn: turn, PlayerID: playerID, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.PlayerID == NoPlayer {
		return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: player %d %s: %v", e.Turn, e.PlayerID, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }

// Category returns the rejection category of the wrapped error
func (e *GameError) Category() Category { return Classify(e.Err) }
