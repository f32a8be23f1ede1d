package game

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/processor"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
	"github.com/mitchelldurbincs/openhex/internal/game/states"
)

// ArbiterConfig holds everything needed to referee one match
type ArbiterConfig struct {
	World   *core.World
	Players []Player
	Rules   core.Rules
	// MaxTurns stops handing out turns once the world turn counter reaches
	// it. Zero means no limit.
	MaxTurns int
	Rng      *rand.Rand
	Logger   zerolog.Logger
	GameID   string
	EventBus *events.EventBus
	// LogEvents attaches a logging subscriber to the event bus
	LogEvents bool
}

// Arbiter is the only mutation entry point of a match. Every operation
// checks all of its preconditions before touching the world, records each
// change in a journal and pushes the journal onto the undo history.
type Arbiter struct {
	world   *core.World
	rules   core.Rules
	players []Player
	rng     *rand.Rand
	logger  zerolog.Logger
	gameID  string

	current        int
	currentKingdom core.KingdomID
	selection      Selection
	winner         core.PlayerID
	maxTurns       int
	turnLimitHit   bool
	actions        int

	history           *History
	legalMoves        *rules.LegalMoveCalculator
	territory         *rules.TerritoryResolver
	winCondition      *rules.WinConditionChecker
	actionProcessor   *processor.ActionProcessor
	productionManager *ProductionManager
	turnProcessor     *TurnProcessor
	stateMachine      *states.StateMachine
	eventBus          *events.EventBus

	// buffered until the running operation commits
	pending []events.Event

	notifying     bool
	pendingNotify bool
}

// NewArbiter builds an arbiter through the ArbiterInitializer. The match
// does not begin until Start is called.
func NewArbiter(ctx context.Context, cfg ArbiterConfig) (*Arbiter, error) {
	return NewArbiterInitializer(cfg).Initialize(ctx)
}

// Start hands the first turn to the first configured player
func (a *Arbiter) Start() error {
	if len(a.players) == 0 {
		return core.WrapGameStateError(a.world.Turn(), a.Phase().String(), core.ErrNoPlayers)
	}
	return a.SetCurrentPlayer(a.players[0].ID())
}

// Public accessors
func (a *Arbiter) World() *core.World                { return a.world }
func (a *Arbiter) Rules() core.Rules                 { return a.rules }
func (a *Arbiter) GameID() string                    { return a.gameID }
func (a *Arbiter) Selection() Selection              { return a.selection }
func (a *Arbiter) EventBus() *events.EventBus        { return a.eventBus }
func (a *Arbiter) Phase() states.GamePhase           { return a.stateMachine.CurrentPhase() }
func (a *Arbiter) IsGameOver() bool                  { return a.winner != core.NoPlayer }
func (a *Arbiter) TurnLimitReached() bool            { return a.turnLimitHit }
func (a *Arbiter) HasUndo() bool                     { return a.history.HasUndo() }
func (a *Arbiter) HasRedo() bool                     { return a.history.HasRedo() }
func (a *Arbiter) Legal() *rules.LegalMoveCalculator { return a.legalMoves }

// Players returns the players in turn order
func (a *Arbiter) Players() []Player {
	return append([]Player(nil), a.players...)
}

// CurrentPlayer returns the player in control, or core.NoPlayer before the
// match starts
func (a *Arbiter) CurrentPlayer() core.PlayerID {
	if a.current < 0 {
		return core.NoPlayer
	}
	return a.players[a.current].ID()
}

// CurrentKingdom returns the selected kingdom or nil
func (a *Arbiter) CurrentKingdom() *core.Kingdom {
	if a.currentKingdom == core.NoKingdom {
		return nil
	}
	return a.world.Kingdom(a.currentKingdom)
}

// Winner returns the winning player once the match is over
func (a *Arbiter) Winner() (core.PlayerID, bool) {
	return a.winner, a.winner != core.NoPlayer
}

// SetCurrentPlayer gives control to player: the selection and current
// kingdom are cleared, the undo history is dropped and the player is
// notified.
func (a *Arbiter) SetCurrentPlayer(player core.PlayerID) error {
	if a.IsGameOver() {
		return a.reject("set_current_player", core.ErrGameOver)
	}
	idx := a.playerIndex(player)
	if idx < 0 {
		return a.reject("set_current_player", core.ErrNoPlayer)
	}
	return a.setCurrentPlayer(idx)
}

func (a *Arbiter) setCurrentPlayer(idx int) error {
	a.current = idx
	a.selection = NoSelection
	a.currentKingdom = core.NoKingdom
	a.history.Clear()
	a.actions = 0

	id := a.players[idx].ID()
	ctx := a.stateMachine.GetContext()
	ctx.CurrentPlayer = id
	ctx.Turn = a.world.Turn()

	if a.Phase() != states.PhaseAwaitingTurn {
		if err := a.transition(states.PhaseAwaitingTurn, "control passed"); err != nil {
			return err
		}
	}
	if err := a.transition(states.PhaseInTurn, "turn started"); err != nil {
		return err
	}

	a.logger.Debug().
		Int("player_id", int(id)).
		Int("turn", a.world.Turn()).
		Msg("Player turn started")
	a.publish(events.NewTurnStartedEvent(a.gameID, id, a.world.Turn()))

	a.notifyCurrent()
	return nil
}

// notifyCurrent calls NotifyTurn on the current player. A player that ends
// its turn from inside NotifyTurn re-enters here; the nested call only flags
// the next notification and the outermost call loops, so a match between
// AI players runs in constant stack depth.
func (a *Arbiter) notifyCurrent() {
	a.pendingNotify = true
	if a.notifying {
		return
	}
	a.notifying = true
	defer func() { a.notifying = false }()

	for a.pendingNotify {
		a.pendingNotify = false
		if a.IsGameOver() || a.current < 0 {
			return
		}
		if a.maxTurns > 0 && a.world.Turn() >= a.maxTurns {
			if !a.turnLimitHit {
				a.turnLimitHit = true
				a.logger.Info().
					Int("turn", a.world.Turn()).
					Int("max_turns", a.maxTurns).
					Msg("Turn limit reached, match halted")
			}
			return
		}
		a.players[a.current].NotifyTurn(a)
	}
}

// SetCurrentKingdom selects one of the current player's kingdoms. It is an
// undoable operation.
func (a *Arbiter) SetCurrentKingdom(id core.KingdomID) error {
	return a.perform("set_current_kingdom", func() error {
		return a.setCurrentKingdom(id)
	})
}

func (a *Arbiter) setCurrentKingdom(id core.KingdomID) error {
	k := a.world.Kingdom(id)
	if k == nil {
		return core.ErrNoKingdomSelected
	}
	if k.Player() != a.CurrentPlayer() {
		return core.ErrNotOwnKingdom
	}
	a.setCurrentKingdomID(id)
	return nil
}

// Undo reverts the last operation of this turn
func (a *Arbiter) Undo() error {
	if a.IsGameOver() {
		return a.reject("undo", core.ErrGameOver)
	}
	op, err := a.history.Undo()
	if err != nil {
		return a.reject("undo", err)
	}
	a.publish(events.NewHistoryUndoneEvent(a.gameID, a.meta(), op))
	return nil
}

// Redo re-applies the last undone operation
func (a *Arbiter) Redo() error {
	if a.IsGameOver() {
		return a.reject("redo", core.ErrGameOver)
	}
	op, err := a.history.Redo()
	if err != nil {
		return a.reject("redo", err)
	}
	a.publish(events.NewHistoryRedoneEvent(a.gameID, a.meta(), op))
	return nil
}

// UndoAll reverts every operation of this turn
func (a *Arbiter) UndoAll() {
	for a.history.HasUndo() {
		if err := a.Undo(); err != nil {
			return
		}
	}
}

// ProcessActions applies policy actions in order through the action
// processor, stopping at the first rejection.
func (a *Arbiter) ProcessActions(ctx context.Context, actions []core.Action) (int, error) {
	return a.actionProcessor.ProcessActions(ctx, a, actions)
}

// perform runs fn as one undoable operation. On failure every change fn
// made is reverted and its buffered events are dropped.
func (a *Arbiter) perform(op string, fn func() error) error {
	if err := a.checkActive(); err != nil {
		return a.reject(op, err)
	}

	j := core.NewJournal()
	a.world.Attach(j)
	err := fn()
	a.world.Attach(nil)

	if err != nil {
		j.Revert()
		a.pending = a.pending[:0]
		return a.reject(op, err)
	}
	if j.Len() > 0 {
		a.history.Push(op, j)
		a.actions++
	}

	a.logger.Debug().
		Int("player_id", int(a.CurrentPlayer())).
		Str("operation", op).
		Int("changes", j.Len()).
		Msg("Operation committed")
	a.flush()
	return nil
}

func (a *Arbiter) checkActive() error {
	if a.IsGameOver() {
		return core.ErrGameOver
	}
	if a.current < 0 {
		return core.ErrNoPlayer
	}
	return nil
}

// reject wraps err with match context and reports it
func (a *Arbiter) reject(op string, err error) error {
	wrapped := core.NewGameError(a.world.Turn(), a.CurrentPlayer(), op, err)
	a.logger.Debug().Err(wrapped).Str("operation", op).Msg("Operation rejected")
	a.publish(events.NewActionRejectedEvent(a.gameID, a.meta(), op, err))
	return wrapped
}

func (a *Arbiter) transition(phase states.GamePhase, reason string) error {
	if err := a.stateMachine.TransitionTo(phase, reason); err != nil {
		a.logger.Error().Err(err).Str("to_phase", phase.String()).Msg("State transition failed")
		return core.WrapGameStateError(a.world.Turn(), a.Phase().String(), err)
	}
	return nil
}

func (a *Arbiter) playerIndex(id core.PlayerID) int {
	for i, p := range a.players {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (a *Arbiter) meta() events.EventMetadata {
	return events.EventMetadata{PlayerID: a.CurrentPlayer(), Turn: a.world.Turn()}
}

// emit buffers an event raised by the running operation
func (a *Arbiter) emit(e events.Event) {
	a.pending = append(a.pending, e)
}

func (a *Arbiter) flush() {
	pending := a.pending
	a.pending = nil
	for _, e := range pending {
		a.publish(e)
	}
}

func (a *Arbiter) publish(e events.Event) {
	if a.eventBus != nil {
		a.eventBus.Publish(e)
	}
}
