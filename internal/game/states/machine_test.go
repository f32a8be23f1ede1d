package states

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseAwaitingTurn, "AwaitingTurn"},
		{PhaseInTurn, "InTurn"},
		{PhaseTurnEnding, "TurnEnding"},
		{PhaseGameOver, "GameOver"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase != GamePhase(999) {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	assert.True(t, PhaseGameOver.IsTerminal())
	assert.False(t, PhaseInTurn.IsTerminal())

	assert.True(t, PhaseInTurn.CanReceiveActions())
	assert.False(t, PhaseTurnEnding.CanReceiveActions())
	assert.False(t, PhaseGameOver.CanReceiveActions())
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseInitializing, []GamePhase{PhaseAwaitingTurn}},
		{PhaseAwaitingTurn, []GamePhase{PhaseInTurn, PhaseGameOver}},
		{PhaseInTurn, []GamePhase{PhaseTurnEnding, PhaseAwaitingTurn}},
		{PhaseTurnEnding, []GamePhase{PhaseAwaitingTurn, PhaseGameOver}},
		{PhaseGameOver, []GamePhase{}},
	}

	allPhases := []GamePhase{PhaseInitializing, PhaseAwaitingTurn, PhaseInTurn, PhaseTurnEnding, PhaseGameOver}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())

			for _, target := range allPhases {
				shouldAllow := false
				for _, allowed := range tt.allowed {
					if target == allowed {
						shouldAllow = true
					}
				}
				assert.Equal(t, shouldAllow, tt.from.CanTransitionTo(target), "%s -> %s", tt.from, target)
			}
		})
	}
}

func TestStateMachine(t *testing.T) {
	setup := func() (*StateMachine, *GameContext, *[]events.Event) {
		ctx := NewGameContext("test-game", 2, zerolog.Nop())
		bus := events.NewEventBusWithLogger(zerolog.Nop())
		var published []events.Event
		bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
			published = append(published, e)
		})
		return NewStateMachine(ctx, bus), ctx, &published
	}

	t.Run("NewStateMachine", func(t *testing.T) {
		sm, ctx, _ := setup()
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Len(t, sm.states, 5)
		assert.Equal(t, core.NoPlayer, ctx.Winner)
	})

	t.Run("Full Turn Cycle", func(t *testing.T) {
		sm, ctx, published := setup()

		require.NoError(t, sm.TransitionTo(PhaseAwaitingTurn, "match started"))
		assert.False(t, ctx.StartTime.IsZero())

		ctx.CurrentPlayer = 0
		require.NoError(t, sm.TransitionTo(PhaseInTurn, "player 0"))
		assert.False(t, ctx.TurnStartTime.IsZero())

		require.NoError(t, sm.TransitionTo(PhaseTurnEnding, "end turn"))

		ctx.Winner = 0
		require.NoError(t, sm.TransitionTo(PhaseGameOver, "player 0 won"))
		assert.True(t, sm.CurrentPhase().IsTerminal())
		assert.False(t, ctx.EndTime.IsZero())

		assert.Len(t, *published, 4)
		last := (*published)[3].(*events.StateTransitionEvent)
		assert.Equal(t, "TurnEnding", last.FromState)
		assert.Equal(t, "GameOver", last.ToState)
	})

	t.Run("Invalid Transitions", func(t *testing.T) {
		sm, _, published := setup()

		err := sm.TransitionTo(PhaseInTurn, "skip steps")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transition")
		assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
		assert.Empty(t, *published)
	})

	t.Run("State Validation", func(t *testing.T) {
		sm, ctx, _ := setup()

		ctx.PlayerCount = 0
		err := sm.TransitionTo(PhaseAwaitingTurn, "no players")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrNoPlayers))

		ctx.PlayerCount = 2
		require.NoError(t, sm.TransitionTo(PhaseAwaitingTurn, "players ready"))

		err = sm.TransitionTo(PhaseInTurn, "nobody")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no current player")

		err = sm.TransitionTo(PhaseGameOver, "no winner")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a winner")
		assert.Equal(t, PhaseAwaitingTurn, sm.CurrentPhase())
	})

	t.Run("History Tracking", func(t *testing.T) {
		sm, ctx, _ := setup()

		ctx.CurrentPlayer = 1
		_ = sm.TransitionTo(PhaseAwaitingTurn, "reason1")
		_ = sm.TransitionTo(PhaseInTurn, "reason2")
		_ = sm.TransitionTo(PhaseAwaitingTurn, "reason3")

		history := sm.GetHistory()
		require.Len(t, history, 3)
		assert.Equal(t, PhaseInitializing, history[0].From)
		assert.Equal(t, PhaseAwaitingTurn, history[0].To)
		assert.Equal(t, "reason2", history[1].Reason)
		assert.Equal(t, core.PlayerID(1), history[1].Player)
		assert.Equal(t, PhaseInTurn, history[2].From)
	})

	t.Run("History Is Bounded", func(t *testing.T) {
		sm, ctx, _ := setup()
		ctx.CurrentPlayer = 0

		require.NoError(t, sm.TransitionTo(PhaseAwaitingTurn, "start"))
		for i := 0; i < maxHistory; i++ {
			ctx.Turn = i
			require.NoError(t, sm.TransitionTo(PhaseInTurn, "turn"))
			require.NoError(t, sm.TransitionTo(PhaseAwaitingTurn, "next"))
		}

		history := sm.GetHistory()
		require.Len(t, history, maxHistory)
		last := history[len(history)-1]
		assert.Equal(t, maxHistory-1, last.Turn)
		assert.Equal(t, PhaseAwaitingTurn, last.To)
	})

	t.Run("CanTransitionTo", func(t *testing.T) {
		sm, _, _ := setup()

		assert.True(t, sm.CanTransitionTo(PhaseAwaitingTurn))
		assert.False(t, sm.CanTransitionTo(PhaseGameOver))
	})
}

// MockState for testing custom state implementations
type MockState struct {
	phase       GamePhase
	enterCalled bool
	exitCalled  bool
	enterError  error
}

func (m *MockState) Phase() GamePhase            { return m.phase }
func (m *MockState) Enter(*GameContext) error    { m.enterCalled = true; return m.enterError }
func (m *MockState) Exit(*GameContext) error     { m.exitCalled = true; return nil }
func (m *MockState) Validate(*GameContext) error { return nil }

func TestStateMachine_CustomStates(t *testing.T) {
	ctx := NewGameContext("test-game", 2, zerolog.Nop())
	sm := NewStateMachine(ctx, nil)

	awaiting := &MockState{phase: PhaseAwaitingTurn}
	inTurn := &MockState{phase: PhaseInTurn, enterError: errors.New("refused")}
	sm.RegisterState(awaiting)
	sm.RegisterState(inTurn)

	require.NoError(t, sm.TransitionTo(PhaseAwaitingTurn, "test"))
	assert.True(t, awaiting.enterCalled)

	err := sm.TransitionTo(PhaseInTurn, "test")
	require.Error(t, err)
	assert.True(t, awaiting.exitCalled)
	assert.True(t, inTurn.enterCalled)
	assert.Equal(t, PhaseAwaitingTurn, sm.CurrentPhase(), "failed enter rolls back")
	assert.Len(t, sm.GetHistory(), 1)
}
