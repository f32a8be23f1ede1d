package rules

import (
	"sort"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/rs/zerolog"
)

// MergeResult describes the kingdoms fused around a captured hex.
type MergeResult struct {
	Survivor   core.KingdomID
	Absorbed   []core.KingdomID
	GoldGained int
	LoneHexes  []core.HexCoord
}

// SplitResult describes how a disconnected kingdom was partitioned.
type SplitResult struct {
	Kingdom   core.KingdomID
	Created   []core.KingdomID
	Stranded  []core.HexCoord
	Destroyed bool
}

// CapitalResult records a capital placed for a kingdom that had none.
type CapitalResult struct {
	Kingdom core.KingdomID
	At      core.HexCoord
	Evicted core.Entity
}

// TerritoryResolver restores the kingdom invariants after land changes
// hands: kingdoms are connected, kingdoms of two or more hexes hold exactly
// one capital, and units or capitals only stand inside kingdoms.
type TerritoryResolver struct {
	logger zerolog.Logger
}

// NewTerritoryResolver creates a new territory resolver
func NewTerritoryResolver(logger zerolog.Logger) *TerritoryResolver {
	return &TerritoryResolver{
		logger: logger.With().Str("component", "TerritoryResolver").Logger(),
	}
}

// Merge fuses the kingdom holding h with every allied kingdom and lone hex
// touching h. The largest kingdom survives. Ties are not broken by plain
// neighbour order: the kingdom holding h (the attacker's) always comes
// first and keeps its identity on a tie, even when an equal ally is met
// first in core.HexDirections order. Ties among allies follow that order.
func (t *TerritoryResolver) Merge(w *core.World, h core.HexCoord) MergeResult {
	hex := w.Hex(h)
	var candidates []*core.Kingdom
	seen := make(map[core.KingdomID]bool)
	if k := w.Kingdom(hex.Kingdom()); k != nil {
		candidates = append(candidates, k)
		seen[k.ID()] = true
	}

	var lone []core.HexCoord
	for _, n := range w.SameOwnerNeighbors(h) {
		if !n.HasKingdom() {
			lone = append(lone, n.Coord())
			continue
		}
		if !seen[n.Kingdom()] {
			seen[n.Kingdom()] = true
			candidates = append(candidates, w.Kingdom(n.Kingdom()))
		}
	}
	if len(candidates) == 0 {
		return MergeResult{}
	}

	survivor := candidates[0]
	for _, k := range candidates[1:] {
		if k.Size() > survivor.Size() {
			survivor = k
		}
	}

	result := MergeResult{Survivor: survivor.ID(), LoneHexes: lone}
	for _, k := range candidates {
		if k == survivor {
			continue
		}
		result.Absorbed = append(result.Absorbed, k.ID())
		result.GoldGained += k.Gold()
		w.AddGold(survivor.ID(), k.Gold())
		for _, c := range k.Coords() {
			if w.Hex(c).Entity().IsCapital() {
				w.SetEntity(c, core.Empty)
			}
			w.SetKingdom(c, survivor.ID())
		}
		w.RemoveKingdom(k.ID())
	}
	for _, c := range lone {
		w.SetKingdom(c, survivor.ID())
	}

	if len(result.Absorbed) > 0 || len(lone) > 0 {
		t.logger.Debug().
			Int("survivor", int(survivor.ID())).
			Interface("absorbed", result.Absorbed).
			Int("lone_hexes", len(lone)).
			Msg("Merged kingdoms")
	}
	return result
}

// Split partitions kingdom id into its connected components. Components of
// a single hex lose their kingdom, the largest component keeps the kingdom
// identity and every other component becomes a new kingdom. Gold is shared
// out in proportion to hex count, rounded up. A kingdom that is still
// connected is left untouched and reported as nil.
func (t *TerritoryResolver) Split(w *core.World, id core.KingdomID) *SplitResult {
	k := w.Kingdom(id)
	if k == nil {
		return nil
	}
	components := w.Components(k.Coords())
	if len(components) <= 1 {
		return nil
	}

	total, gold := k.Size(), k.Gold()
	share := func(n int) int { return (n*gold + total - 1) / total }

	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i]) > len(components[j])
	})

	result := &SplitResult{Kingdom: id}
	var kept [][]core.HexCoord
	for _, comp := range components {
		if len(comp) == 1 {
			result.Stranded = append(result.Stranded, comp[0])
			w.SetKingdom(comp[0], core.NoKingdom)
			continue
		}
		kept = append(kept, comp)
	}

	if len(kept) == 0 {
		result.Destroyed = true
		w.RemoveKingdom(id)
		t.logger.Debug().Int("kingdom", int(id)).Msg("Split left no viable component, kingdom destroyed")
		return result
	}

	w.SetGold(id, share(len(kept[0])))
	for _, comp := range kept[1:] {
		nk := w.NewKingdom(k.Player(), share(len(comp)))
		for _, c := range comp {
			w.SetKingdom(c, nk.ID())
		}
		result.Created = append(result.Created, nk.ID())
	}

	t.logger.Debug().
		Int("kingdom", int(id)).
		Int("components", len(components)).
		Interface("created", result.Created).
		Msg("Split kingdom")
	return result
}

// RebuildCapitals gives every kingdom of two or more hexes without a capital
// a new one at its most interior hex.
func (t *TerritoryResolver) RebuildCapitals(w *core.World) []CapitalResult {
	var results []CapitalResult
	for _, k := range w.Kingdoms() {
		if k.Size() < 2 {
			continue
		}
		if _, ok := k.Capital(); ok {
			continue
		}
		at := CapitalSite(w, k)
		evicted := w.Hex(at).Entity()
		w.SetEntity(at, core.NewCapital())
		results = append(results, CapitalResult{Kingdom: k.ID(), At: at, Evicted: evicted})
		t.logger.Debug().Int("kingdom", int(k.ID())).Stringer("at", at).Msg("Rebuilt capital")
	}
	return results
}

// DemoteStranded turns every unit or capital standing outside a kingdom
// into a tree.
func (t *TerritoryResolver) DemoteStranded(w *core.World) []core.HexCoord {
	var demoted []core.HexCoord
	for _, h := range w.Hexes() {
		if h.HasKingdom() {
			continue
		}
		e := h.Entity()
		if e.IsUnit() || e.IsCapital() {
			w.SetEntity(h.Coord(), core.NewTree(w.TreeKindAt(h.Coord())))
			demoted = append(demoted, h.Coord())
		}
	}
	return demoted
}

// CapitalSite picks the hex of k where a capital should stand: the hexes
// are ranked by same-owner neighbour count, then the first empty one is
// chosen, else the first tree, else the best ranked hex whatever it holds.
func CapitalSite(w *core.World, k *core.Kingdom) core.HexCoord {
	ranked := MostInterior(w, k.Coords())
	for _, c := range ranked {
		if w.Hex(c).Entity().IsEmpty() {
			return c
		}
	}
	for _, c := range ranked {
		if w.Hex(c).Entity().IsTree() {
			return c
		}
	}
	return ranked[0]
}

// MostInterior orders coords by descending same-owner neighbour count,
// keeping row-major order among equals.
func MostInterior(w *core.World, coords []core.HexCoord) []core.HexCoord {
	ranked := make([]core.HexCoord, len(coords))
	copy(ranked, coords)
	score := make(map[core.HexCoord]int, len(coords))
	for _, c := range coords {
		score[c] = len(w.SameOwnerNeighbors(c))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return score[ranked[i]] > score[ranked[j]]
	})
	return ranked
}
