package game

import "github.com/mitchelldurbincs/openhex/internal/game/core"

// PlayerStats summarises what a player holds on the board
type PlayerStats struct {
	PlayerID core.PlayerID
	Hexes    int
	Kingdoms int
	Units    int
	Towers   int
	Gold     int
	Income   int
	Outcome  int
	Alive    bool
}

// Balance is the gold change the player's kingdoms would see next turn
func (s PlayerStats) Balance() int { return s.Income - s.Outcome }

// ComputePlayerStats scans the world once and returns stats for players,
// in the given order.
func ComputePlayerStats(w *core.World, players []core.PlayerID) []PlayerStats {
	idx := make(map[core.PlayerID]int, len(players))
	stats := make([]PlayerStats, len(players))
	for i, p := range players {
		idx[p] = i
		stats[i].PlayerID = p
	}

	for _, h := range w.Hexes() {
		i, ok := idx[h.Owner()]
		if !ok {
			continue
		}
		stats[i].Hexes++
		switch {
		case h.Entity().IsUnit():
			stats[i].Units++
		case h.Entity().IsTower():
			stats[i].Towers++
		}
	}
	for _, k := range w.Kingdoms() {
		i, ok := idx[k.Player()]
		if !ok {
			continue
		}
		stats[i].Kingdoms++
		stats[i].Gold += k.Gold()
		stats[i].Income += k.Income()
		stats[i].Outcome += k.Outcome()
	}
	for i := range stats {
		stats[i].Alive = stats[i].Kingdoms > 0
	}
	return stats
}

// Stats returns the stats of every player in turn order
func (a *Arbiter) Stats() []PlayerStats {
	ids := make([]core.PlayerID, len(a.players))
	for i, p := range a.players {
		ids[i] = p.ID()
	}
	return ComputePlayerStats(a.world, ids)
}
