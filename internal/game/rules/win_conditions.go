package rules

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckWinner reports the winning player once a single kingdom owns every
// hex of the world.
func (wc *WinConditionChecker) CheckWinner(w *core.World) (core.PlayerID, bool) {
	wc.logger.Debug().Msg("Checking game over conditions")
	hexes := w.Hexes()
	if len(hexes) == 0 {
		return core.NoPlayer, false
	}
	id := hexes[0].Kingdom()
	if id == core.NoKingdom {
		return core.NoPlayer, false
	}
	for _, h := range hexes[1:] {
		if h.Kingdom() != id {
			return core.NoPlayer, false
		}
	}
	winner := w.Kingdom(id).Player()
	wc.logger.Info().Int("winner_player_id", int(winner)).Msg("Winner determined")
	return winner, true
}

// PlayerAlive reports whether the player still holds a kingdom
func PlayerAlive(w *core.World, player core.PlayerID) bool {
	return len(w.KingdomsOf(player)) > 0
}
