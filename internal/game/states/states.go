package states

import (
	"errors"
	"time"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

var (
	errNoCurrentPlayer = errors.New("no current player")
	errNoWinner        = errors.New("game over requires a winner")
)

// InitializingState is the phase before any player has control
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("players", ctx.PlayerCount).Msg("Match ready")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// AwaitingTurnState hands control to the next player
type AwaitingTurnState struct{}

func NewAwaitingTurnState() State {
	return &AwaitingTurnState{}
}

func (s *AwaitingTurnState) Phase() GamePhase {
	return PhaseAwaitingTurn
}

func (s *AwaitingTurnState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
	}
	return nil
}

func (s *AwaitingTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AwaitingTurnState) Validate(ctx *GameContext) error {
	if ctx.PlayerCount < 1 {
		return core.ErrNoPlayers
	}
	return nil
}

// InTurnState is where the current player acts
type InTurnState struct{}

func NewInTurnState() State {
	return &InTurnState{}
}

func (s *InTurnState) Phase() GamePhase {
	return PhaseInTurn
}

func (s *InTurnState) Enter(ctx *GameContext) error {
	ctx.TurnStartTime = time.Now()
	ctx.Logger.Debug().
		Int("player_id", int(ctx.CurrentPlayer)).
		Int("turn", ctx.Turn).
		Msg("Player turn started")
	return nil
}

func (s *InTurnState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("player_id", int(ctx.CurrentPlayer)).
		Dur("turn_duration", time.Since(ctx.TurnStartTime)).
		Msg("Player turn finished")
	return nil
}

func (s *InTurnState) Validate(ctx *GameContext) error {
	if ctx.CurrentPlayer == core.NoPlayer {
		return errNoCurrentPlayer
	}
	return nil
}

// TurnEndingState resolves the end of turn bookkeeping
type TurnEndingState struct{}

func NewTurnEndingState() State {
	return &TurnEndingState{}
}

func (s *TurnEndingState) Phase() GamePhase {
	return PhaseTurnEnding
}

func (s *TurnEndingState) Enter(ctx *GameContext) error {
	return nil
}

func (s *TurnEndingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *TurnEndingState) Validate(ctx *GameContext) error {
	return nil
}

// GameOverState is the terminal phase
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() GamePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("winner", int(ctx.Winner)).
		Int("turn", ctx.Turn).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *GameOverState) Exit(ctx *GameContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *GameContext) error {
	if ctx.Winner == core.NoPlayer {
		return errNoWinner
	}
	return nil
}
