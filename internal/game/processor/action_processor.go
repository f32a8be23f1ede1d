package processor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Executor applies validated actions to a match. The game Arbiter satisfies
// it; keeping it here avoids an import cycle with the game package.
type Executor interface {
	World() *core.World
	CurrentPlayer() core.PlayerID
	MoveUnit(from, to core.HexCoord) error
	BuyUnitTowardsHex(kingdom core.KingdomID, target core.HexCoord, level int) error
	BuyTowerAt(kingdom core.KingdomID, target core.HexCoord) error
}

// ActionProcessor turns policy actions into arbiter operations
type ActionProcessor struct {
	logger zerolog.Logger
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// Apply validates a single action and forwards it to exec. Errors carry the
// action context via core.WrapActionError.
func (ap *ActionProcessor) Apply(exec Executor, action core.Action) error {
	if err := action.Validate(exec.World(), exec.CurrentPlayer()); err != nil {
		return core.WrapActionError(action, err)
	}

	ap.logger.Debug().
		Int("player_id", int(action.GetPlayerID())).
		Str("action", action.Describe()).
		Msg("Applying action")

	var err error
	switch act := action.(type) {
	case *core.MoveUnitAction:
		err = exec.MoveUnit(act.From, act.To)
	case *core.BuyUnitAction:
		err = exec.BuyUnitTowardsHex(act.Kingdom, act.Target, act.Level)
	case *core.BuyTowerAction:
		err = exec.BuyTowerAt(act.Kingdom, act.Target)
	default:
		ap.logger.Warn().
			Int("player_id", int(action.GetPlayerID())).
			Str("action_type", action.GetType().String()).
			Msg("Unhandled action type")
		err = core.ErrIllegalTarget
	}
	return core.WrapActionError(action, err)
}

// ProcessActions applies actions in order and stops at the first failure,
// since later actions were planned against the state the failed one would
// have produced. It returns how many actions were applied.
func (ap *ActionProcessor) ProcessActions(ctx context.Context, exec Executor, actions []core.Action) (int, error) {
	for i, action := range actions {
		select {
		case <-ctx.Done():
			ap.logger.Warn().Err(ctx.Err()).Msg("Action processing interrupted by context cancellation")
			return i, ctx.Err()
		default:
		}

		if err := ap.Apply(exec, action); err != nil {
			ap.logger.Warn().Err(err).
				Int("player_id", int(action.GetPlayerID())).
				Int("remaining", len(actions)-i-1).
				Msg("Action rejected, abandoning plan")
			return i, err
		}
	}
	return len(actions), nil
}
