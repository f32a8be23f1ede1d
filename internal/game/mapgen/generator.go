package mapgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/common"
	"github.com/mitchelldurbincs/openhex/internal/config"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
)

// ErrNoLand is returned when the noise leaves too little land for a match
var ErrNoLand = errors.New("generated island has no land")

// MapConfig holds configuration for island generation
type MapConfig struct {
	Radius        int
	Seed          int64
	Players       int
	NoiseScale    float64
	Octaves       int
	LandThreshold float64
	Rules         core.Rules
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(radius, players int) MapConfig {
	return MapConfig{
		Radius:        radius,
		Players:       players,
		NoiseScale:    0.18,
		Octaves:       3,
		LandThreshold: 0.35,
		Rules:         core.DefaultRules(),
	}
}

// MapConfigFrom reads the map section of cfg. The caller supplies the rules
// so generated treasuries match the match being played.
func MapConfigFrom(cfg config.MapConfig, r core.Rules) MapConfig {
	return MapConfig{
		Radius:        cfg.Radius,
		Seed:          cfg.Seed,
		Players:       cfg.Players,
		NoiseScale:    cfg.NoiseScale,
		Octaves:       cfg.Octaves,
		LandThreshold: cfg.LandThreshold,
		Rules:         r,
	}
}

// Generator builds island worlds with a deterministic RNG
type Generator struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator creates a new map generator
func NewGenerator(rng *rand.Rand, logger zerolog.Logger) *Generator {
	return &Generator{
		rng:    rng,
		logger: logger.With().Str("component", "MapGenerator").Logger(),
	}
}

// Hexagon returns every coordinate of the hexagon of the given radius
// centred on the origin, in row-major order.
func Hexagon(radius int) []core.HexCoord {
	coords := make([]core.HexCoord, 0, common.HexagonSize(radius))
	for r := -radius; r <= radius; r++ {
		for q := -radius; q <= radius; q++ {
			c := core.NewHexCoord(q, r)
			if common.InHexagon(c, radius) {
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// Generate builds an island, splits it between the players and founds the
// initial kingdoms.
func (g *Generator) Generate(cfg MapConfig) (*core.World, error) {
	if cfg.Radius < 1 {
		return nil, fmt.Errorf("radius must be positive, got %d", cfg.Radius)
	}
	if cfg.Players < 1 {
		return nil, core.ErrNoPlayers
	}

	land := largestMass(g.land(cfg))
	if len(land) < 2 {
		return nil, ErrNoLand
	}

	w, err := core.NewWorld(land)
	if err != nil {
		return nil, err
	}
	for _, c := range w.Coords() {
		w.SetOwner(c, core.PlayerID(g.rng.Intn(cfg.Players)))
	}

	kingdoms := w.FormKingdoms()
	for _, k := range kingdoms {
		w.SetEntity(rules.CapitalSite(w, k), core.NewCapital())
		w.SetGold(k.ID(), rules.InitialGold(cfg.Rules, k))
	}

	trees := rules.NewVegetationGrower(cfg.Rules.Vegetation, g.logger).Seed(w, g.rng)

	g.logger.Debug().
		Int("hexes", w.Len()).
		Int("kingdoms", len(kingdoms)).
		Int("trees", trees).
		Int64("seed", cfg.Seed).
		Msg("Island generated")
	return w, nil
}

// land keeps the hexes whose noise, faded towards the rim, clears the
// threshold
func (g *Generator) land(cfg MapConfig) []core.HexCoord {
	noise := opensimplex.NewNormalized(cfg.Seed)
	octaves := common.Max(cfg.Octaves, 1)
	scale := cfg.NoiseScale
	if scale <= 0 {
		scale = 0.18
	}

	var land []core.HexCoord
	origin := core.NewHexCoord(0, 0)
	for _, c := range Hexagon(cfg.Radius) {
		x := math.Sqrt(3) * (float64(c.Q) + float64(c.R)/2)
		y := 1.5 * float64(c.R)

		value, amp, total, freq := 0.0, 1.0, 0.0, scale
		for o := 0; o < octaves; o++ {
			value += amp * noise.Eval2(x*freq, y*freq)
			total += amp
			amp /= 2
			freq *= 2
		}
		value /= total

		d := float64(c.DistanceTo(origin)) / float64(cfg.Radius+1)
		if value*(1-d*d) > cfg.LandThreshold {
			land = append(land, c)
		}
	}
	return land
}

// largestMass returns the biggest connected group of coords, ties going to
// the group found first
func largestMass(coords []core.HexCoord) []core.HexCoord {
	member := make(map[core.HexCoord]bool, len(coords))
	for _, c := range coords {
		member[c] = true
	}
	seen := make(map[core.HexCoord]bool, len(coords))

	var best []core.HexCoord
	for _, seed := range coords {
		if seen[seed] {
			continue
		}
		seen[seed] = true
		mass := []core.HexCoord{seed}
		for i := 0; i < len(mass); i++ {
			for _, n := range mass[i].Neighbors() {
				if member[n] && !seen[n] {
					seen[n] = true
					mass = append(mass, n)
				}
			}
		}
		if len(mass) > len(best) {
			best = mass
		}
	}
	return best
}
