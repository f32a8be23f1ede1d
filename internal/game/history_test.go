package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

func TestHistory(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0. 0.")
	k := w.KingdomAt(hx(0, 0))
	h := NewHistory()

	assert.False(t, h.HasUndo())
	_, err := h.Undo()
	assert.ErrorIs(t, err, core.ErrNothingToUndo)
	_, err = h.Redo()
	assert.ErrorIs(t, err, core.ErrNothingToRedo)

	push := func(op string, gold int) {
		j := core.NewJournal()
		w.Attach(j)
		w.SetGold(k.ID(), gold)
		w.Attach(nil)
		h.Push(op, j)
	}
	push("first", 5)
	push("second", 9)
	assert.Equal(t, 2, h.Len())

	op, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, "second", op)
	assert.Equal(t, 5, k.Gold())
	assert.True(t, h.HasRedo())

	op, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, "second", op)
	assert.Equal(t, 9, k.Gold())

	_, _ = h.Undo()
	push("third", 1)
	assert.False(t, h.HasRedo(), "a new entry drops the redo tail")
	assert.Equal(t, 2, h.Len())

	h.Clear()
	assert.False(t, h.HasUndo())
	assert.Equal(t, 1, k.Gold(), "clearing does not touch the world")
}

// state is everything an undo must restore
type state struct {
	world     core.Snapshot
	selection Selection
	kingdom   core.KingdomID
}

func captureState(a *Arbiter) state {
	return state{world: a.World().Snapshot(), selection: a.Selection(), kingdom: a.currentKingdom}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	split := []string{
		"1C 1. 1. 1. 1. 1.",
		"~  0C 0. 0^",
	}

	tests := []struct {
		name  string
		world []string
		setup func(a *Arbiter)
		op    func(a *Arbiter) error
	}{
		{
			name:  "select kingdom",
			world: split,
			op:    func(a *Arbiter) error { return a.SetCurrentKingdom(a.World().KingdomAt(hx(1, 1)).ID()) },
		},
		{
			name:  "buy unit",
			world: split,
			setup: func(a *Arbiter) { _ = a.SetCurrentKingdom(a.World().KingdomAt(hx(1, 1)).ID()) },
			op:    func(a *Arbiter) error { return a.BuyUnit() },
		},
		{
			name:  "capture that splits a kingdom",
			world: split,
			setup: func(a *Arbiter) {
				_ = a.SetCurrentKingdom(a.World().KingdomAt(hx(1, 1)).ID())
				_ = a.BuyUnit()
			},
			op: func(a *Arbiter) error { return a.PlaceAt(hx(2, 0)) },
		},
		{
			name:  "clear a tree",
			world: split,
			setup: func(a *Arbiter) {
				_ = a.SetCurrentKingdom(a.World().KingdomAt(hx(1, 1)).ID())
				_ = a.BuyUnit()
			},
			op: func(a *Arbiter) error { return a.PlaceAt(hx(3, 1)) },
		},
		{
			name:  "capture that dissolves a kingdom",
			world: []string{"0C 0. 01 1C 11 0C 0."},
			setup: func(a *Arbiter) {
				_ = a.SmartAction(hx(2, 0))
				_ = a.BuyUnit()
			},
			op: func(a *Arbiter) error { return a.SmartAction(hx(3, 0)) },
		},
		{
			name:  "direct move that merges",
			world: []string{"0C 0. 01 1. 0C 0."},
			op:    func(a *Arbiter) error { return a.MoveUnit(hx(2, 0), hx(3, 0)) },
		},
		{
			name:  "direct purchase capture",
			world: []string{"0C 0. 0. 1. 1C 1."},
			op: func(a *Arbiter) error {
				return a.BuyUnitTowardsHex(a.World().KingdomAt(hx(0, 0)).ID(), hx(3, 0), 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.BuildWorld(t, tt.world...)
			a := startedArbiter(t, w)
			for _, k := range w.Kingdoms() {
				w.SetGold(k.ID(), 25)
			}
			if tt.setup != nil {
				tt.setup(a)
			}

			before := captureState(a)
			require.NoError(t, tt.op(a))
			after := captureState(a)
			require.NotEqual(t, before, after)
			testutil.AssertInvariants(t, w)

			require.NoError(t, a.Undo())
			assert.Equal(t, before, captureState(a))
			testutil.AssertInvariants(t, w)

			require.NoError(t, a.Redo())
			assert.Equal(t, after, captureState(a))
			testutil.AssertInvariants(t, w)
		})
	}
}

func TestUndoAll(t *testing.T) {
	w := testutil.BuildWorld(t, "1C 1. 1. 1. 1. 1.", "~  0C 0.")
	a := startedArbiter(t, w)
	testutil.SetGold(t, w, hx(1, 1), 30)
	rec := record(a)
	start := captureState(a)

	require.NoError(t, a.SetCurrentKingdom(w.KingdomAt(hx(1, 1)).ID()))
	require.NoError(t, a.BuyUnit())
	require.NoError(t, a.PlaceAt(hx(2, 0)))
	require.NoError(t, a.BuyUnit())
	require.NoError(t, a.PlaceAt(hx(2, 1)))
	require.True(t, a.HasUndo())

	a.UndoAll()

	assert.False(t, a.HasUndo())
	assert.True(t, a.HasRedo())
	assert.Equal(t, start, captureState(a))
	assert.Contains(t, rec.types(), events.TypeHistoryUndone)
}

func TestRedoTailDroppedByNewOperation(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0. 1C 1.")
	a := startedArbiter(t, w)
	k := testutil.SetGold(t, w, hx(0, 0), 30)
	require.NoError(t, a.SetCurrentKingdom(k.ID()))
	require.NoError(t, a.BuyUnit())
	require.NoError(t, a.BuyUnit())

	require.NoError(t, a.Undo())
	assert.Equal(t, 1, a.Selection().Level)
	assert.Equal(t, 20, k.Gold())
	require.True(t, a.HasRedo())

	require.NoError(t, a.BuyUnit())
	assert.False(t, a.HasRedo())
	assert.ErrorIs(t, a.Redo(), core.ErrNothingToRedo)
}
