package ai

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/game"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/mapgen"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

var hx = testutil.C

func staticRules() core.Rules {
	r := core.DefaultRules()
	r.Vegetation.CoastalMax = 0
	r.Vegetation.ContinentalMax = 0
	return r
}

func idle(id core.PlayerID) game.Player {
	return game.PlayerFunc{PlayerID: id}
}

// playFirstTurn starts a match where p moves first against an idle player 1
// and returns once p has ended its turn
func playFirstTurn(t *testing.T, w *core.World, p game.Player) *game.Arbiter {
	t.Helper()
	a, err := game.NewArbiter(context.Background(), game.ArbiterConfig{
		World:   w,
		Players: []game.Player{p, idle(1)},
		Rules:   staticRules(),
		Rng:     testutil.NewTestRNG(3),
		Logger:  testutil.NopLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Start())
	require.Equal(t, core.PlayerID(1), a.CurrentPlayer(), "AI should have ended its turn")
	return a
}

func hard(id core.PlayerID) *Player {
	return NewPlayer(id, NewHard(), 1, testutil.NopLogger())
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy("easy")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, s.Name())

	s, err = NewStrategy("HARD")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, s.Name())

	s, err = NewStrategy("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, s.Name())

	_, err = NewStrategy("nightmare")
	assert.Error(t, err)
}

func TestHard_ClearsCoastalTree(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 01 0^ ~  1C 1.")

	playFirstTurn(t, w, hard(0))

	assert.Equal(t, core.Empty, w.Hex(hx(1, 0)).Entity())
	assert.Equal(t, core.NewUnit(1), w.Hex(hx(2, 0)).Entity())
	assert.Equal(t, core.DefaultRules().TreeClearGold, w.KingdomAt(hx(0, 0)).Gold())
	testutil.AssertInvariants(t, w)
}

func TestHard_AttacksMostSurroundedHex(t *testing.T) {
	w := testutil.BuildWorld(t,
		"0C 0. 01 1. 1.",
		"0. 0. 1. 1. 1C",
	)

	playFirstTurn(t, w, hard(0))

	assert.Equal(t, core.PlayerID(0), w.Hex(hx(2, 1)).Owner())
	assert.Equal(t, core.NewUnit(1), w.Hex(hx(2, 1)).Entity())
	assert.Equal(t, core.PlayerID(1), w.Hex(hx(3, 0)).Owner())
	testutil.AssertInvariants(t, w)
}

func TestHard_BuysStrongestAffordableAttacker(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0. 0. 1. 1. 1C")
	testutil.SetGold(t, w, hx(0, 0), 40)

	playFirstTurn(t, w, hard(0))

	assert.Equal(t, core.PlayerID(0), w.Hex(hx(3, 0)).Owner())
	assert.Equal(t, core.NewUnit(2), w.Hex(hx(3, 0)).Entity())
	assert.Equal(t, 20, w.KingdomAt(hx(0, 0)).Gold())
	assert.Equal(t, core.PlayerID(1), w.Hex(hx(4, 0)).Owner())
	testutil.AssertInvariants(t, w)
}

func TestHard_KickstartsUnitlessKingdom(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0^ 0^ 1. 1. 1C")
	testutil.SetGold(t, w, hx(0, 0), 10)

	playFirstTurn(t, w, hard(0))

	assert.Equal(t, core.PlayerID(0), w.Hex(hx(3, 0)).Owner())
	assert.Equal(t, core.NewUnit(1), w.Hex(hx(3, 0)).Entity())
	assert.Equal(t, 0, w.KingdomAt(hx(0, 0)).Gold())
	assert.True(t, w.Hex(hx(1, 0)).Entity().IsTree(), "unaffordable tree clearing must be skipped")
}

var towerWorld = []string{
	"0C 0. 0. 1.",
	"0. 0. 0. 1.",
	"0. 0. 0. 1C",
}

func TestHard_BuildsTowerOnExposedHex(t *testing.T) {
	w := testutil.BuildWorld(t, towerWorld...)
	testutil.SetGold(t, w, hx(0, 0), 15)

	playFirstTurn(t, w, hard(0))

	assert.Equal(t, core.NewTower(), w.Hex(hx(1, 1)).Entity())
	assert.Equal(t, 0, w.KingdomAt(hx(0, 0)).Gold())
}

func TestEasy_NeverBuildsTowers(t *testing.T) {
	w := testutil.BuildWorld(t, towerWorld...)
	testutil.SetGold(t, w, hx(0, 0), 15)

	playFirstTurn(t, w, NewPlayer(0, NewEasy(), 1, testutil.NopLogger()))

	for _, h := range w.Hexes() {
		assert.False(t, h.Entity().IsTower(), "tower at %v", h.Coord())
	}
	assert.Equal(t, core.PlayerID(0), w.Hex(hx(3, 0)).Owner())
	assert.Equal(t, 5, w.KingdomAt(hx(0, 0)).Gold())
}

type failingStrategy struct{ calls int }

func (f *failingStrategy) Name() string { return "failing" }

func (f *failingStrategy) PlayKingdom(t *Turn, id core.KingdomID) error {
	f.calls++
	return t.Move(hx(0, 0), hx(1, 0))
}

func TestPlayer_IllegalActionIsLoggedAndTurnEnds(t *testing.T) {
	var buf bytes.Buffer
	strategy := &failingStrategy{}
	p := NewPlayer(0, strategy, 1, zerolog.New(&buf))

	w := testutil.BuildWorld(t, "0C 0. ~  1C 1.")
	playFirstTurn(t, w, p)

	assert.Equal(t, 1, strategy.calls)
	assert.Contains(t, buf.String(), "AI illegal move")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Equal(t, core.NewCapital(), w.Hex(hx(0, 0)).Entity())
}

func TestPlayer_CancelledContextPasses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	strategy := &failingStrategy{}
	p := NewPlayer(0, strategy, 1, testutil.NopLogger()).WithContext(ctx)

	w := testutil.BuildWorld(t, "0C 0. ~  1C 1.")
	playFirstTurn(t, w, p)

	assert.Zero(t, strategy.calls)
}

func TestAffordability(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0. 0. 01 1C 1.")
	k := testutil.SetGold(t, w, hx(0, 0), 30)
	r := core.DefaultRules()

	// income 4, upkeep 2
	assert.True(t, canAffordUnit(r, k, 1))
	assert.True(t, canAffordUnit(r, k, 2))
	assert.False(t, canAffordUnit(r, k, 3), "level 3 upkeep is not covered")

	testutil.SetGold(t, w, hx(0, 0), 10)
	assert.True(t, canAffordUnit(r, k, 1))
	assert.False(t, canAffordUnit(r, k, 2), "not enough gold")

	assert.True(t, canAffordMerge(k, 1, 1))
	testutil.SetGold(t, w, hx(0, 0), 0)
	assert.False(t, canAffordMerge(k, 1, 2), "level 3 upkeep is too high")
}

func TestMostAttractive(t *testing.T) {
	w := testutil.BuildWorld(t,
		"0C 0. 04 1. 1T",
		"0. 0. 1. 1. 1C",
	)
	k := w.KingdomAt(hx(0, 0))

	targets := []core.HexCoord{hx(3, 0), hx(2, 1), hx(4, 0)}
	assert.Equal(t, hx(4, 0), mostAttractive(w, targets, k, 4), "strong units go for towers")
	assert.Equal(t, hx(2, 1), mostAttractive(w, targets, k, 1))
	assert.Equal(t, hx(3, 0), mostAttractive(w, []core.HexCoord{hx(3, 0), hx(2, 1)}, k, 3), "hexes guarded by a tower come next")
}

func TestFullMatchKeepsInvariants(t *testing.T) {
	cfg := mapgen.DefaultMapConfig(6, 3)
	cfg.Seed = 11
	w, err := mapgen.NewGenerator(testutil.NewTestRNG(5), testutil.NopLogger()).Generate(cfg)
	if errors.Is(err, mapgen.ErrNoLand) {
		t.Skip("seed produced no island")
	}
	require.NoError(t, err)

	players := []game.Player{
		NewPlayer(0, NewHard(), 1, testutil.NopLogger()),
		NewPlayer(1, NewEasy(), 2, testutil.NopLogger()),
		NewPlayer(2, NewHard(), 3, testutil.NopLogger()),
	}
	a, err := game.NewArbiter(context.Background(), game.ArbiterConfig{
		World:    w,
		Players:  players,
		Rules:    core.DefaultRules(),
		MaxTurns: 60,
		Rng:      testutil.NewTestRNG(9),
		Logger:   testutil.NopLogger(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Start())

	assert.True(t, a.IsGameOver() || a.TurnLimitReached())
	testutil.AssertInvariants(t, w)
	for _, h := range w.Hexes() {
		if h.Entity().IsUnit() {
			assert.LessOrEqual(t, h.Entity().Level, core.DefaultRules().UnitMaxLevel)
		}
	}
}
