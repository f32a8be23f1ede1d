package mapgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/openhex/internal/common"
	"github.com/mitchelldurbincs/openhex/internal/config"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/testutil"
)

func newTestGenerator() *Generator {
	return NewGenerator(testutil.NewTestRNG(12345), testutil.NopLogger())
}

// fullIsland keeps every hex of the hexagon as land
func fullIsland(radius, players int) MapConfig {
	cfg := DefaultMapConfig(radius, players)
	cfg.LandThreshold = -1
	return cfg
}

func TestHexagon(t *testing.T) {
	for radius := 0; radius <= 4; radius++ {
		coords := Hexagon(radius)
		assert.Len(t, coords, common.HexagonSize(radius), "radius %d", radius)

		seen := make(map[core.HexCoord]bool)
		for _, c := range coords {
			assert.True(t, common.InHexagon(c, radius), "%v outside radius %d", c, radius)
			assert.False(t, seen[c], "duplicate %v", c)
			seen[c] = true
		}
	}
	assert.Equal(t, []core.HexCoord{{Q: 0, R: 0}}, Hexagon(0))
}

func TestDefaultMapConfig(t *testing.T) {
	cfg := DefaultMapConfig(6, 3)
	assert.Equal(t, 6, cfg.Radius)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, 3, cfg.Octaves)
	assert.Equal(t, core.DefaultRules(), cfg.Rules)
}

func TestMapConfigFrom(t *testing.T) {
	rules := core.DefaultRules()
	rules.InitialGoldTurns = 2
	cfg := MapConfigFrom(config.MapConfig{
		Radius: 5, Seed: 9, Players: 2, NoiseScale: 0.3, Octaves: 4, LandThreshold: 0.4,
	}, rules)

	assert.Equal(t, MapConfig{
		Radius: 5, Seed: 9, Players: 2, NoiseScale: 0.3, Octaves: 4, LandThreshold: 0.4, Rules: rules,
	}, cfg)
}

func TestGenerate_FullIsland(t *testing.T) {
	cfg := fullIsland(4, 2)
	cfg.Rules.Vegetation.InitialSpawn = 0

	w, err := newTestGenerator().Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, common.HexagonSize(4), w.Len())
	testutil.AssertInvariants(t, w)

	require.NotEmpty(t, w.Kingdoms())
	for _, k := range w.Kingdoms() {
		assert.Equal(t, k.Income()*cfg.Rules.InitialGoldTurns, k.Gold(), "kingdom %d", k.ID())
	}
	for _, h := range w.Hexes() {
		assert.True(t, h.Owner() == 0 || h.Owner() == 1, "hex %v owned by %d", h.Coord(), h.Owner())
		if !h.HasKingdom() {
			assert.Empty(t, w.SameOwnerNeighbors(h.Coord()), "lone hex %v has allies", h.Coord())
			assert.True(t, h.Entity().IsEmpty())
		}
	}
}

func TestGenerate_TreesNeverReplaceCapitals(t *testing.T) {
	cfg := fullIsland(4, 3)
	cfg.Rules.Vegetation.InitialSpawn = 1

	w, err := newTestGenerator().Generate(cfg)
	require.NoError(t, err)
	testutil.AssertInvariants(t, w)

	for _, h := range w.Hexes() {
		if h.HasKingdom() {
			if capital, ok := w.Kingdom(h.Kingdom()).Capital(); ok && capital.Coord() == h.Coord() {
				continue
			}
		}
		assert.True(t, h.Entity().IsTree(), "hex %v holds %v", h.Coord(), h.Entity())
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultMapConfig(6, 4)
	cfg.Seed = 42

	a, err := newTestGenerator().Generate(cfg)
	require.NoError(t, err)
	b, err := newTestGenerator().Generate(cfg)
	require.NoError(t, err)

	require.Equal(t, a.Coords(), b.Coords())
	for _, c := range a.Coords() {
		assert.Equal(t, a.Hex(c).Owner(), b.Hex(c).Owner(), "owner at %v", c)
		assert.Equal(t, a.Hex(c).Entity(), b.Hex(c).Entity(), "entity at %v", c)
	}
	assert.Equal(t, len(a.Kingdoms()), len(b.Kingdoms()))
}

func TestGenerate_LandIsOneMass(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		cfg := DefaultMapConfig(7, 2)
		cfg.Seed = seed

		w, err := newTestGenerator().Generate(cfg)
		if err != nil {
			require.ErrorIs(t, err, ErrNoLand)
			continue
		}
		assert.Len(t, largestMass(w.Coords()), w.Len(), "seed %d", seed)
		for _, c := range w.Coords() {
			assert.True(t, common.InHexagon(c, cfg.Radius))
		}
		testutil.AssertInvariants(t, w)
	}
}

func TestGenerate_Errors(t *testing.T) {
	g := newTestGenerator()

	_, err := g.Generate(fullIsland(0, 2))
	assert.Error(t, err)

	_, err = g.Generate(fullIsland(3, 0))
	assert.ErrorIs(t, err, core.ErrNoPlayers)

	cfg := DefaultMapConfig(3, 2)
	cfg.LandThreshold = 1
	_, err = g.Generate(cfg)
	assert.ErrorIs(t, err, ErrNoLand)
}

func TestLargestMass(t *testing.T) {
	small := []core.HexCoord{{Q: 5, R: 5}, {Q: 6, R: 5}}
	big := []core.HexCoord{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 0, R: 1}}
	coords := append(append([]core.HexCoord{}, small...), big...)

	assert.ElementsMatch(t, big, largestMass(coords))
	assert.Empty(t, largestMass(nil))
}
