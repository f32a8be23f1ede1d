package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// C is shorthand for an axial coordinate
func C(q, r int) core.HexCoord {
	return core.NewHexCoord(q, r)
}

// BuildWorld parses a hand-drawn map. Row i holds the hexes with r = i and
// the j-th token of a row is q = j, so hex (q, r) touches (q, r-1),
// (q+1, r-1), (q-1, r), (q+1, r), (q-1, r+1) and (q, r+1). Each token is an
// owner followed by an entity and an optional '*' marking a played unit:
//
//	owner:  0-9 player, _ unowned land, ~ water (no hex)
//	entity: . empty, C capital, T tower, ^ tree, + grave, 1-4 unit
//
// Kingdoms are formed from every same-owner group of two or more hexes, in
// row-major order of their first hex, with no gold.
func BuildWorld(t testing.TB, rows ...string) *core.World {
	t.Helper()
	w, err := ParseWorld(rows...)
	if err != nil {
		t.Fatalf("build world: %v", err)
	}
	return w
}

// ParseWorld is BuildWorld without a testing.TB
func ParseWorld(rows ...string) (*core.World, error) {
	type cell struct {
		owner  core.PlayerID
		entity byte
		played bool
	}
	cells := make(map[core.HexCoord]cell)
	var coords []core.HexCoord

	for r, row := range rows {
		for q, tok := range strings.Fields(row) {
			if tok[0] == '~' {
				continue
			}
			if len(tok) < 2 || len(tok) > 3 {
				return nil, fmt.Errorf("bad token %q at (%d,%d)", tok, q, r)
			}
			c := core.NewHexCoord(q, r)
			owner := core.NoPlayer
			switch {
			case tok[0] == '_':
			case tok[0] >= '0' && tok[0] <= '9':
				owner = core.PlayerID(tok[0] - '0')
			default:
				return nil, fmt.Errorf("bad owner in %q", tok)
			}
			cells[c] = cell{owner: owner, entity: tok[1], played: len(tok) == 3 && tok[2] == '*'}
			coords = append(coords, c)
		}
	}

	w, err := core.NewWorld(coords)
	if err != nil {
		return nil, err
	}
	for _, c := range coords {
		cl := cells[c]
		w.SetOwner(c, cl.owner)
		var e core.Entity
		switch cl.entity {
		case '.':
			e = core.Empty
		case 'C':
			e = core.NewCapital()
		case 'T':
			e = core.NewTower()
		case '^':
			e = core.NewTree(w.TreeKindAt(c))
		case '+':
			e = core.NewGrave()
		case '1', '2', '3', '4':
			e = core.NewUnit(int(cl.entity - '0')).WithPlayed(cl.played)
		default:
			return nil, fmt.Errorf("bad entity %q at %v", cl.entity, c)
		}
		w.SetEntity(c, e)
	}
	w.FormKingdoms()
	return w, nil
}

// SetGold sets the treasury of the kingdom holding c
func SetGold(t testing.TB, w *core.World, c core.HexCoord, gold int) *core.Kingdom {
	t.Helper()
	k := w.KingdomAt(c)
	if k == nil {
		t.Fatalf("no kingdom at %v", c)
	}
	w.SetGold(k.ID(), gold)
	return k
}

// AssertInvariants fails the test when a kingdom is disconnected, lacks a
// unique capital, or disagrees with its hexes' back-references.
func AssertInvariants(t testing.TB, w *core.World) {
	t.Helper()
	for _, k := range w.Kingdoms() {
		if k.Size() < 2 {
			t.Errorf("kingdom %d has %d hexes", k.ID(), k.Size())
		}
		if !k.IsConnected(w) {
			t.Errorf("kingdom %d is not connected", k.ID())
		}
		capitals := 0
		for _, h := range k.Hexes() {
			if h.Kingdom() != k.ID() {
				t.Errorf("hex %v lists kingdom %d, expected %d", h.Coord(), h.Kingdom(), k.ID())
			}
			if h.Owner() != k.Player() {
				t.Errorf("hex %v owned by %d inside kingdom of player %d", h.Coord(), h.Owner(), k.Player())
			}
			if h.Entity().IsCapital() {
				capitals++
			}
		}
		if capitals != 1 {
			t.Errorf("kingdom %d has %d capitals", k.ID(), capitals)
		}
	}
	for _, h := range w.Hexes() {
		if h.HasKingdom() && w.Kingdom(h.Kingdom()) == nil {
			t.Errorf("hex %v references missing kingdom %d", h.Coord(), h.Kingdom())
		}
	}
}
