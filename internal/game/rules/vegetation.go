package rules

import (
	"math"
	"math/rand"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/rs/zerolog"
)

// VegetationGrower spreads trees at the end of every turn and lets graves
// rot into trees.
type VegetationGrower struct {
	cfg    core.Vegetation
	logger zerolog.Logger
}

// NewVegetationGrower creates a new vegetation grower
func NewVegetationGrower(cfg core.Vegetation, logger zerolog.Logger) *VegetationGrower {
	return &VegetationGrower{
		cfg:    cfg,
		logger: logger.With().Str("component", "VegetationGrower").Logger(),
	}
}

// GrowthProbability is the chance for a tree to seed one neighbour. It ramps
// up with the turn count towards maxProbability and is divided by the
// number of players since growth runs once per player turn.
func (v *VegetationGrower) GrowthProbability(turn int, maxProbability float64, players int) float64 {
	if players < 1 {
		players = 1
	}
	return (1 - math.Exp(-float64(turn)*v.cfg.GrowOverTime)) * maxProbability / float64(players)
}

// Grow seeds new trees around existing ones. Coastal trees spread along the
// coast, every tree spreads inland. Only empty hexes are planted.
func (v *VegetationGrower) Grow(w *core.World, rng *rand.Rand, players int) []core.HexCoord {
	coastal := v.GrowthProbability(w.Turn(), v.cfg.CoastalMax, players)
	continental := v.GrowthProbability(w.Turn(), v.cfg.ContinentalMax, players)

	var trees []*core.Hex
	for _, h := range w.Hexes() {
		if h.Entity().IsTree() {
			trees = append(trees, h)
		}
	}

	var grown []core.HexCoord
	for _, tree := range trees {
		for _, n := range w.Neighbors(tree.Coord()) {
			if !n.Entity().IsEmpty() {
				continue
			}
			c := n.Coord()
			isCoast := w.IsCoastal(c)
			var p float64
			switch {
			case isCoast && tree.Entity().Tree == core.TreeCoastal:
				p = coastal
			case !isCoast:
				p = continental
			default:
				continue
			}
			if rng.Float64() < p {
				w.SetEntity(c, core.NewTree(w.TreeKindAt(c)))
				grown = append(grown, c)
			}
		}
	}

	if len(grown) > 0 {
		v.logger.Debug().Int("turn", w.Turn()).Int("grown", len(grown)).Msg("Trees spread")
	}
	return grown
}

// GravesToTrees replaces every grave on land owned by player with a tree
func (v *VegetationGrower) GravesToTrees(w *core.World, player core.PlayerID) []core.HexCoord {
	var rotted []core.HexCoord
	for _, h := range w.Hexes() {
		if h.Owner() == player && h.Entity().IsGrave() {
			w.SetEntity(h.Coord(), core.NewTree(w.TreeKindAt(h.Coord())))
			rotted = append(rotted, h.Coord())
		}
	}
	return rotted
}

// Seed plants initial trees on empty hexes with the configured spawn
// probability. Used by world generation.
func (v *VegetationGrower) Seed(w *core.World, rng *rand.Rand) int {
	planted := 0
	for _, h := range w.Hexes() {
		if h.Entity().IsEmpty() && rng.Float64() < v.cfg.InitialSpawn {
			w.SetEntity(h.Coord(), core.NewTree(w.TreeKindAt(h.Coord())))
			planted++
		}
	}
	return planted
}
