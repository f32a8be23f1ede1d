package game

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
)

// ProductionManager runs the between-turn growth of a match: trees spread,
// graves rot into trees and kingdoms collect income and pay upkeep.
type ProductionManager struct {
	vegetation *rules.VegetationGrower
	publish    func(events.Event)
	gameID     string
	logger     zerolog.Logger
}

// NewProductionManager creates a new production manager
func NewProductionManager(vegetation *rules.VegetationGrower, publish func(events.Event), gameID string, logger zerolog.Logger) *ProductionManager {
	return &ProductionManager{
		vegetation: vegetation,
		publish:    publish,
		gameID:     gameID,
		logger:     logger.With().Str("component", "ProductionManager").Logger(),
	}
}

// ProcessVegetation grows trees across the world and turns next's graves
// into trees
func (pm *ProductionManager) ProcessVegetation(w *core.World, rng *rand.Rand, players int, next core.PlayerID) {
	grown := pm.vegetation.Grow(w, rng, players)
	rotted := pm.vegetation.GravesToTrees(w, next)

	pm.logger.Debug().
		Int("turn", w.Turn()).
		Int("grown", len(grown)).
		Int("rotted", len(rotted)).
		Msg("Vegetation processed")

	if len(grown) > 0 || len(rotted) > 0 {
		meta := events.EventMetadata{PlayerID: next, Turn: w.Turn()}
		pm.publish(events.NewTreesGrownEvent(pm.gameID, meta, len(grown), len(rotted)))
	}
}

// ProcessSettlement settles every kingdom of player
func (pm *ProductionManager) ProcessSettlement(w *core.World, player core.PlayerID) []rules.Settlement {
	settlements := rules.SettlePlayer(w, player)
	meta := events.EventMetadata{PlayerID: player, Turn: w.Turn()}

	totalIncome, totalOutcome := 0, 0
	for _, s := range settlements {
		totalIncome += s.Income
		totalOutcome += s.Outcome
		if len(s.Starved) > 0 {
			pm.logger.Info().
				Int("player_id", int(player)).
				Int("kingdom", int(s.Kingdom)).
				Int("units", len(s.Starved)).
				Msg("Kingdom bankrupt, units starved")
			pm.publish(events.NewUnitsStarvedEvent(pm.gameID, meta, s.Kingdom, len(s.Starved)))
		}
	}

	pm.logger.Debug().
		Int("player_id", int(player)).
		Int("kingdoms", len(settlements)).
		Int("income", totalIncome).
		Int("upkeep", totalOutcome).
		Msg("Kingdoms settled")
	return settlements
}
