package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/states"
)

// TurnProcessor handles the orchestration of the end of a player's turn
type TurnProcessor struct {
	arbiter *Arbiter
	logger  zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(a *Arbiter) *TurnProcessor {
	return &TurnProcessor{
		arbiter: a,
		logger:  a.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// EndTurn finishes the current player's turn and hands control to the next
// player. It is refused while a selection is pending.
func (a *Arbiter) EndTurn() error {
	if err := a.checkActive(); err != nil {
		return a.reject("end_turn", err)
	}
	if !a.selection.IsEmpty() {
		return a.reject("end_turn", core.ErrSelectionPending)
	}
	return a.turnProcessor.ProcessEndTurn()
}

// ProcessEndTurn runs the end of turn phases in order: played flags are
// reset, victory is checked, the next player is chosen, vegetation grows,
// the next player's kingdoms are settled and the next player is notified.
func (tp *TurnProcessor) ProcessEndTurn() error {
	a := tp.arbiter
	player := a.CurrentPlayer()
	turnLogger := tp.logger.With().
		Int("turn", a.world.Turn()).
		Int("player_id", int(player)).
		Logger()

	if err := a.transition(states.PhaseTurnEnding, "end turn"); err != nil {
		return err
	}

	tp.resetPlayedUnits(player)
	a.publish(events.NewTurnEndedEvent(a.gameID, player, a.world.Turn(), a.actions))

	if winner, ok := a.winCondition.CheckWinner(a.world); ok {
		return tp.finishGame(winner, turnLogger)
	}

	nextIdx := a.current + 1
	if nextIdx >= len(a.players) {
		nextIdx = 0
		a.world.AdvanceTurn()
	}
	next := a.players[nextIdx].ID()

	a.productionManager.ProcessVegetation(a.world, a.rng, len(a.players), next)
	if a.world.Turn() > 0 {
		a.productionManager.ProcessSettlement(a.world, next)
	}

	turnLogger.Debug().
		Int("next_player", int(next)).
		Msg("Turn ended")
	return a.setCurrentPlayer(nextIdx)
}

// resetPlayedUnits lets every unit of player act again
func (tp *TurnProcessor) resetPlayedUnits(player core.PlayerID) {
	w := tp.arbiter.world
	for _, k := range w.KingdomsOf(player) {
		for _, h := range k.Units() {
			if h.Entity().Played {
				w.SetEntity(h.Coord(), h.Entity().WithPlayed(false))
			}
		}
	}
}

func (tp *TurnProcessor) finishGame(winner core.PlayerID, turnLogger zerolog.Logger) error {
	a := tp.arbiter
	a.winner = winner
	a.history.Clear()
	a.stateMachine.GetContext().Winner = winner

	if err := a.transition(states.PhaseGameOver, fmt.Sprintf("player %d won", winner)); err != nil {
		return err
	}

	turnLogger.Info().
		Int("winner", int(winner)).
		Msg("Player owns every hex, game over")
	a.publish(events.NewPlayerWonEvent(a.gameID, winner, a.world.Turn()))
	return nil
}
