package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
)

// State represents a match phase with lifecycle callbacks
type State interface {
	Phase() GamePhase

	// Enter runs when the machine moves into the phase. An error aborts
	// the transition and leaves the previous phase current.
	Enter(ctx *GameContext) error

	// Exit runs when the machine leaves the phase. Errors are logged only.
	Exit(ctx *GameContext) error

	// Validate checks that the context allows entering the phase
	Validate(ctx *GameContext) error
}

// Transition is one entry of the phase history, stamped with the turn and
// the player holding control when it happened
type Transition struct {
	From      GamePhase
	To        GamePhase
	Turn      int
	Player    core.PlayerID
	Reason    string
	Timestamp time.Time
}

// maxHistory bounds the transition history; a long AI match makes four
// transitions per player per round
const maxHistory = 512

// StateMachine moves a match through its phases
type StateMachine struct {
	mu        sync.RWMutex
	current   GamePhase
	states    map[GamePhase]State
	ctx       *GameContext
	history   []Transition
	publisher events.Publisher
}

// NewStateMachine creates a machine in PhaseInitializing with the built-in
// states registered. publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		current:   PhaseInitializing,
		states:    make(map[GamePhase]State, 5),
		ctx:       ctx,
		publisher: publisher,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewAwaitingTurnState(),
		NewInTurnState(),
		NewTurnEndingState(),
		NewGameOverState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation of a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current match phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// CanTransitionTo reports whether the phase table allows moving to target
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current.CanTransitionTo(target)
}

// TransitionTo moves the machine to target. The StateTransition event is
// published after the lock is released so subscribers may query the machine.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	t, err := sm.move(target, reason)
	if err != nil {
		return err
	}

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(sm.ctx.GameID, t.From.String(), t.To.String(), reason))
	}
	sm.ctx.Logger.Debug().
		Str("from_phase", t.From.String()).
		Str("to_phase", t.To.String()).
		Int("turn", t.Turn).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

func (sm *StateMachine) move(target GamePhase, reason string) (Transition, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.current
	if !from.CanTransitionTo(target) {
		return Transition{}, fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		return Transition{}, fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.ctx); err != nil {
		return Transition{}, fmt.Errorf("target state validation failed: %w", err)
	}

	if prev, ok := sm.states[from]; ok {
		if err := prev.Exit(sm.ctx); err != nil {
			sm.ctx.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.current = target
	if err := next.Enter(sm.ctx); err != nil {
		sm.current = from
		return Transition{}, fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	t := Transition{
		From:      from,
		To:        target,
		Turn:      sm.ctx.Turn,
		Player:    sm.ctx.CurrentPlayer,
		Reason:    reason,
		Timestamp: time.Now(),
	}
	sm.history = append(sm.history, t)
	if len(sm.history) > maxHistory {
		sm.history = sm.history[len(sm.history)-maxHistory:]
	}
	return t, nil
}

// GetHistory returns a copy of the transition history, oldest first
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the match context the states read and write
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.ctx
}
