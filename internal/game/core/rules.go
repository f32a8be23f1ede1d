package core

// Vegetation holds the tree growth tuning.
type Vegetation struct {
	CoastalMax     float64
	ContinentalMax float64
	GrowOverTime   float64
	InitialSpawn   float64
}

// Rules groups the prices and limits every rule computation needs.
type Rules struct {
	UnitPrice        int
	UnitMaxLevel     int
	UnitMoveSteps    int
	TowerPrice       int
	TreeClearGold    int
	InitialGoldTurns int
	Vegetation       Vegetation
}

// DefaultRules returns the canonical game constants
func DefaultRules() Rules {
	return Rules{
		UnitPrice:        10,
		UnitMaxLevel:     4,
		UnitMoveSteps:    5,
		TowerPrice:       15,
		TreeClearGold:    3,
		InitialGoldTurns: 5,
		Vegetation: Vegetation{
			CoastalMax:     1.0,
			ContinentalMax: 0.25,
			GrowOverTime:   0.1,
			InitialSpawn:   1.0 / 16,
		},
	}
}

// UnitCost is the price of a unit of the given level bought in one go.
func (r Rules) UnitCost(level int) int {
	return level * r.UnitPrice
}

// UnitUpkeep is the per-turn cost of a unit: 2, 6, 18, 54 for levels 1-4.
func UnitUpkeep(level int) int {
	upkeep := 2
	for i := 1; i < level; i++ {
		upkeep *= 3
	}
	return upkeep
}
