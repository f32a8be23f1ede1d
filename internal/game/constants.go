package game

import (
	"github.com/mitchelldurbincs/openhex/internal/config"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// RulesFromConfig converts the rules and vegetation sections of cfg into
// core.Rules. A nil cfg yields core.DefaultRules.
func RulesFromConfig(cfg *config.Config) core.Rules {
	if cfg == nil {
		return core.DefaultRules()
	}
	r := cfg.Game.Rules
	veg := cfg.Game.Vegetation
	return core.Rules{
		UnitPrice:        r.UnitPrice,
		UnitMaxLevel:     r.UnitMaxLevel,
		UnitMoveSteps:    r.UnitMoveSteps,
		TowerPrice:       r.TowerPrice,
		TreeClearGold:    r.TreeClearGold,
		InitialGoldTurns: r.InitialGoldTurns,
		Vegetation: core.Vegetation{
			CoastalMax:     veg.CoastalMax,
			ContinentalMax: veg.ContinentalMax,
			GrowOverTime:   veg.GrowOverTime,
			InitialSpawn:   veg.InitialSpawn,
		},
	}
}
