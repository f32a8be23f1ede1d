package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/config"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

func TestComputePlayerStats(t *testing.T) {
	w := testutil.BuildWorld(t,
		"0C 01 02 0^ 1. 1C 1T",
		"~  ~  ~  ~  ~  ~  2.",
	)
	testutil.SetGold(t, w, hx(0, 0), 12)

	stats := ComputePlayerStats(w, []core.PlayerID{0, 1, 2})
	require.Len(t, stats, 3)

	p0 := stats[0]
	assert.Equal(t, core.PlayerID(0), p0.PlayerID)
	assert.Equal(t, 4, p0.Hexes)
	assert.Equal(t, 1, p0.Kingdoms)
	assert.Equal(t, 2, p0.Units)
	assert.Equal(t, 12, p0.Gold)
	assert.Equal(t, 3, p0.Income)
	assert.Equal(t, 8, p0.Outcome)
	assert.Equal(t, -5, p0.Balance())
	assert.True(t, p0.Alive)

	assert.Equal(t, 1, stats[1].Towers)
	assert.Equal(t, 3, stats[1].Hexes)

	assert.Equal(t, 1, stats[2].Hexes)
	assert.False(t, stats[2].Alive, "a lone hex is not a kingdom")
}

func TestArbiterStats(t *testing.T) {
	w := testutil.BuildWorld(t, "0C 0. 1C 1.")
	a := startedArbiter(t, w)

	stats := a.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, core.PlayerID(0), stats[0].PlayerID)
	assert.Equal(t, core.PlayerID(1), stats[1].PlayerID)
	assert.Equal(t, 2, stats[1].Hexes)
}

func TestRulesFromConfig(t *testing.T) {
	assert.Equal(t, core.DefaultRules(), RulesFromConfig(nil))

	cfg := &config.Config{}
	cfg.Game.Rules = config.RulesConfig{
		UnitPrice:        12,
		UnitMaxLevel:     3,
		UnitMoveSteps:    4,
		TowerPrice:       20,
		TreeClearGold:    1,
		InitialGoldTurns: 2,
	}
	cfg.Game.Vegetation = config.VegetationConfig{CoastalMax: 0.5, ContinentalMax: 0.1, GrowOverTime: 0.2, InitialSpawn: 0.05}

	r := RulesFromConfig(cfg)
	assert.Equal(t, 12, r.UnitPrice)
	assert.Equal(t, 3, r.UnitMaxLevel)
	assert.Equal(t, 4, r.UnitMoveSteps)
	assert.Equal(t, 20, r.TowerPrice)
	assert.Equal(t, 1, r.TreeClearGold)
	assert.Equal(t, 2, r.InitialGoldTurns)
	assert.Equal(t, core.Vegetation{CoastalMax: 0.5, ContinentalMax: 0.1, GrowOverTime: 0.2, InitialSpawn: 0.05}, r.Vegetation)
}
