package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

type fakeExecutor struct {
	world   *core.World
	player  core.PlayerID
	calls   []string
	failAt  int
	failErr error
}

func (f *fakeExecutor) World() *core.World           { return f.world }
func (f *fakeExecutor) CurrentPlayer() core.PlayerID { return f.player }

func (f *fakeExecutor) record(name string) error {
	f.calls = append(f.calls, name)
	if f.failErr != nil && len(f.calls) == f.failAt {
		return f.failErr
	}
	return nil
}

func (f *fakeExecutor) MoveUnit(from, to core.HexCoord) error {
	return f.record("move " + from.String() + " " + to.String())
}

func (f *fakeExecutor) BuyUnitTowardsHex(kingdom core.KingdomID, target core.HexCoord, level int) error {
	return f.record("unit " + target.String())
}

func (f *fakeExecutor) BuyTowerAt(kingdom core.KingdomID, target core.HexCoord) error {
	return f.record("tower " + target.String())
}

func newExecutor(t *testing.T) *fakeExecutor {
	w := testutil.BuildWorld(t,
		"0C 0. 02 0. 1. 1C",
	)
	return &fakeExecutor{world: w, player: 0}
}

func TestApply_DispatchesByType(t *testing.T) {
	exec := newExecutor(t)
	ap := NewActionProcessor(testutil.NopLogger())
	k := exec.world.KingdomAt(testutil.C(0, 0)).ID()

	require.NoError(t, ap.Apply(exec, &core.MoveUnitAction{PlayerID: 0, From: testutil.C(2, 0), To: testutil.C(4, 0)}))
	require.NoError(t, ap.Apply(exec, &core.BuyUnitAction{PlayerID: 0, Kingdom: k, Target: testutil.C(1, 0), Level: 1}))
	require.NoError(t, ap.Apply(exec, &core.BuyTowerAction{PlayerID: 0, Kingdom: k, Target: testutil.C(3, 0)}))

	assert.Equal(t, []string{
		"move (2,0,-2) (4,0,-4)",
		"unit (1,0,-1)",
		"tower (3,0,-3)",
	}, exec.calls)
}

func TestApply_StaticValidationFailsBeforeExecutor(t *testing.T) {
	exec := newExecutor(t)
	ap := NewActionProcessor(testutil.NopLogger())

	err := ap.Apply(exec, &core.MoveUnitAction{PlayerID: 0, From: testutil.C(1, 0), To: testutil.C(4, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrIllegalTarget))

	var actionErr *core.ActionError
	require.True(t, errors.As(err, &actionErr))
	assert.Equal(t, core.PlayerID(0), actionErr.PlayerID)
	assert.Contains(t, err.Error(), "move from")
	assert.Empty(t, exec.calls)

	err = ap.Apply(exec, &core.MoveUnitAction{PlayerID: 1, From: testutil.C(2, 0), To: testutil.C(4, 0)})
	assert.True(t, errors.Is(err, core.ErrNotOwnKingdom), "actions for another player are refused")
}

func TestProcessActions_StopsAtFirstFailure(t *testing.T) {
	exec := newExecutor(t)
	exec.failAt, exec.failErr = 2, core.ErrInsufficientGold
	ap := NewActionProcessor(testutil.NopLogger())
	k := exec.world.KingdomAt(testutil.C(0, 0)).ID()

	actions := []core.Action{
		&core.BuyTowerAction{PlayerID: 0, Kingdom: k, Target: testutil.C(3, 0)},
		&core.BuyUnitAction{PlayerID: 0, Kingdom: k, Target: testutil.C(1, 0), Level: 1},
		&core.BuyUnitAction{PlayerID: 0, Kingdom: k, Target: testutil.C(3, 0), Level: 1},
	}

	applied, err := ap.ProcessActions(context.Background(), exec, actions)
	assert.Equal(t, 1, applied)
	assert.True(t, errors.Is(err, core.ErrInsufficientGold))
	assert.Len(t, exec.calls, 2)
}

func TestProcessActions_HonorsCancellation(t *testing.T) {
	exec := newExecutor(t)
	ap := NewActionProcessor(testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applied, err := ap.ProcessActions(ctx, exec, []core.Action{
		&core.MoveUnitAction{PlayerID: 0, From: testutil.C(2, 0), To: testutil.C(4, 0)},
	})
	assert.Zero(t, applied)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, exec.calls)
}
