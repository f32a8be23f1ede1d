package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// GameContext provides match information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this match
	GameID string

	Logger zerolog.Logger

	// PlayerCount is the number of registered players
	PlayerCount int

	// CurrentPlayer holds control during PhaseInTurn
	CurrentPlayer core.PlayerID

	// Turn mirrors the world's turn counter
	Turn int

	// StartTime is when the first turn began
	StartTime time.Time

	// TurnStartTime is when the current player received control
	TurnStartTime time.Time

	// EndTime is when the match entered PhaseGameOver
	EndTime time.Time

	// Winner is the sole surviving player once the match is over
	Winner core.PlayerID

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, playerCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:        gameID,
		PlayerCount:   playerCount,
		CurrentPlayer: core.NoPlayer,
		Winner:        core.NoPlayer,
		Logger:        logger.With().Str("game_id", gameID).Logger(),
		Metadata:      make(map[string]interface{}),
	}
}

// GetElapsedTime returns the time elapsed since the first turn began
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

// SetMetadata stores custom data for states
func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := gc.Metadata[key]
	return val, exists
}
