package rules

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Settlement is the outcome of paying one kingdom's upkeep.
type Settlement struct {
	Kingdom    core.KingdomID
	Income     int
	Outcome    int
	GoldBefore int
	GoldAfter  int
	Starved    []core.HexCoord
}

// SettleKingdom adds income and pays upkeep. A kingdom that cannot pay loses
// every unit to a grave and ends with an empty treasury.
func SettleKingdom(w *core.World, k *core.Kingdom) Settlement {
	s := Settlement{
		Kingdom:    k.ID(),
		Income:     k.Income(),
		Outcome:    k.Outcome(),
		GoldBefore: k.Gold(),
	}
	total := s.GoldBefore + s.Income - s.Outcome
	if total < 0 {
		for _, h := range k.Units() {
			w.SetEntity(h.Coord(), core.NewGrave())
			s.Starved = append(s.Starved, h.Coord())
		}
		total = 0
	}
	w.SetGold(k.ID(), total)
	s.GoldAfter = total
	return s
}

// SettlePlayer settles every kingdom of player in id order
func SettlePlayer(w *core.World, player core.PlayerID) []Settlement {
	var out []Settlement
	for _, k := range w.KingdomsOf(player) {
		out = append(out, SettleKingdom(w, k))
	}
	return out
}

// InitialGold is the starting treasury of a freshly generated kingdom
func InitialGold(r core.Rules, k *core.Kingdom) int {
	return k.Income() * r.InitialGoldTurns
}
