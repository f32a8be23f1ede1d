package rules

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// CaptureResult carries everything that changed when a hex was taken.
type CaptureResult struct {
	Target          core.HexCoord
	Attacker        core.KingdomID
	PreviousOwner   core.PlayerID
	PreviousKingdom core.KingdomID
	CapitalTaken    bool
	Dissolved       []core.KingdomID
	Merge           MergeResult
	Splits          []SplitResult
	Capitals        []CapitalResult
	Demoted         []core.HexCoord
}

// Destroyed returns every kingdom that no longer exists after the capture
func (r CaptureResult) Destroyed() []core.KingdomID {
	out := append([]core.KingdomID(nil), r.Dissolved...)
	out = append(out, r.Merge.Absorbed...)
	for _, s := range r.Splits {
		if s.Destroyed {
			out = append(out, s.Kingdom)
		}
	}
	return out
}

// Capture transfers the hex at target to the attacking kingdom, stations
// unit on it and runs the full territory pass. Legality must have been
// checked with ValidateCapture beforehand.
func (t *TerritoryResolver) Capture(w *core.World, attacker core.KingdomID, target core.HexCoord, unit core.Entity) CaptureResult {
	hex := w.Hex(target)
	k := w.Kingdom(attacker)
	result := CaptureResult{
		Target:          target,
		Attacker:        attacker,
		PreviousOwner:   hex.Owner(),
		PreviousKingdom: hex.Kingdom(),
	}

	if hex.Entity().IsCapital() && hex.HasKingdom() {
		w.SetGold(hex.Kingdom(), 0)
		result.CapitalTaken = true
	}
	w.SetEntity(target, unit.WithPlayed(true))

	if prev := result.PreviousKingdom; prev != core.NoKingdom {
		w.SetKingdom(target, core.NoKingdom)
		if w.Kingdom(prev).Size() < 2 {
			w.RemoveKingdom(prev)
			result.Dissolved = append(result.Dissolved, prev)
		}
	}
	w.SetKingdom(target, attacker)
	w.SetOwner(target, k.Player())

	result.Merge = t.Merge(w, target)
	owner := w.Hex(target).Kingdom()

	var enemies []core.KingdomID
	seen := map[core.KingdomID]bool{owner: true, core.NoKingdom: true}
	if prev := result.PreviousKingdom; !seen[prev] && w.Kingdom(prev) != nil {
		seen[prev] = true
		enemies = append(enemies, prev)
	}
	for _, n := range w.Neighbors(target) {
		if !seen[n.Kingdom()] {
			seen[n.Kingdom()] = true
			enemies = append(enemies, n.Kingdom())
		}
	}
	for _, id := range enemies {
		if split := t.Split(w, id); split != nil {
			result.Splits = append(result.Splits, *split)
		}
	}

	result.Capitals = t.RebuildCapitals(w)
	result.Demoted = t.DemoteStranded(w)

	t.logger.Debug().
		Stringer("target", target).
		Int("attacker", int(attacker)).
		Int("previous_owner", int(result.PreviousOwner)).
		Bool("capital_taken", result.CapitalTaken).
		Int("splits", len(result.Splits)).
		Msg("Hex captured")
	return result
}
