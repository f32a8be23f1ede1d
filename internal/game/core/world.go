package core

import (
	"fmt"
	"sort"
)

// World owns every hex and kingdom of a match. All mutation goes through the
// methods below; while a Journal is attached each of them records the prior
// value it overwrote so the operation can be reverted or replayed.
type World struct {
	hexes         map[HexCoord]*Hex
	coords        []HexCoord
	kingdoms      map[KingdomID]*Kingdom
	nextKingdomID KingdomID
	turn          int
	journal       *Journal
}

// NewWorld creates a world over the given land coordinates. Every hex starts
// unowned, kingdom-less and empty. Duplicate coordinates are rejected.
func NewWorld(coords []HexCoord) (*World, error) {
	w := &World{
		hexes:         make(map[HexCoord]*Hex, len(coords)),
		coords:        make([]HexCoord, 0, len(coords)),
		kingdoms:      make(map[KingdomID]*Kingdom),
		nextKingdomID: NoKingdom + 1,
	}
	for _, c := range coords {
		if _, dup := w.hexes[c]; dup {
			return nil, fmt.Errorf("duplicate hex %v: %w", c, ErrIllegalTarget)
		}
		w.hexes[c] = &Hex{coord: c, owner: NoPlayer, kingdom: NoKingdom}
		w.coords = append(w.coords, c)
	}
	sort.Slice(w.coords, func(i, j int) bool { return w.coords[i].Less(w.coords[j]) })
	return w, nil
}

// Len returns the number of hexes
func (w *World) Len() int { return len(w.coords) }

// Turn returns the turn counter
func (w *World) Turn() int { return w.turn }

// Hex returns the hex at c, or nil when c is not land
func (w *World) Hex(c HexCoord) *Hex { return w.hexes[c] }

// Has reports whether c is a land hex of this world
func (w *World) Has(c HexCoord) bool {
	_, ok := w.hexes[c]
	return ok
}

// Coords returns every land coordinate in row-major order. The slice is
// shared; callers must not modify it.
func (w *World) Coords() []HexCoord { return w.coords }

// Hexes returns every hex in row-major order
func (w *World) Hexes() []*Hex {
	out := make([]*Hex, len(w.coords))
	for i, c := range w.coords {
		out[i] = w.hexes[c]
	}
	return out
}

// Neighbors returns the land neighbours of c in HexDirections order
func (w *World) Neighbors(c HexCoord) []*Hex {
	out := make([]*Hex, 0, 6)
	for _, n := range c.Neighbors() {
		if h, ok := w.hexes[n]; ok {
			out = append(out, h)
		}
	}
	return out
}

// SameOwnerNeighbors returns the neighbours of c owned by the same player as c
func (w *World) SameOwnerNeighbors(c HexCoord) []*Hex {
	h := w.hexes[c]
	if h == nil {
		return nil
	}
	out := make([]*Hex, 0, 6)
	for _, n := range w.Neighbors(c) {
		if n.owner == h.owner {
			out = append(out, n)
		}
	}
	return out
}

// IsCoastal reports whether c touches water, i.e. has fewer than six land
// neighbours.
func (w *World) IsCoastal(c HexCoord) bool {
	return len(w.Neighbors(c)) < 6
}

// TreeKindAt returns the kind of tree that grows at c
func (w *World) TreeKindAt(c HexCoord) TreeKind {
	if w.IsCoastal(c) {
		return TreeCoastal
	}
	return TreeContinental
}

// Kingdom returns the kingdom with the given id, or nil
func (w *World) Kingdom(id KingdomID) *Kingdom { return w.kingdoms[id] }

// KingdomAt returns the kingdom the hex at c belongs to, or nil
func (w *World) KingdomAt(c HexCoord) *Kingdom {
	h := w.hexes[c]
	if h == nil {
		return nil
	}
	return w.kingdoms[h.kingdom]
}

// Kingdoms returns every kingdom in id order
func (w *World) Kingdoms() []*Kingdom {
	ids := make([]KingdomID, 0, len(w.kingdoms))
	for id := range w.kingdoms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*Kingdom, len(ids))
	for i, id := range ids {
		out[i] = w.kingdoms[id]
	}
	return out
}

// KingdomsOf returns the kingdoms of a player in id order
func (w *World) KingdomsOf(p PlayerID) []*Kingdom {
	var out []*Kingdom
	for _, k := range w.Kingdoms() {
		if k.player == p {
			out = append(out, k)
		}
	}
	return out
}

// Attach starts journaling every mutation into j. Passing nil stops it.
func (w *World) Attach(j *Journal) { w.journal = j }

// Journal returns the attached journal, or nil
func (w *World) Journal() *Journal { return w.journal }

func (w *World) record(c Change) {
	c.Apply()
	if w.journal != nil {
		w.journal.Record(c)
	}
}

// SetEntity replaces the occupant of the hex at c
func (w *World) SetEntity(c HexCoord, e Entity) {
	h := w.mustHex(c)
	if h.entity == e {
		return
	}
	w.record(&entityChange{w: w, at: c, before: h.entity, after: e})
}

// SetOwner changes the player owning the hex at c
func (w *World) SetOwner(c HexCoord, p PlayerID) {
	h := w.mustHex(c)
	if h.owner == p {
		return
	}
	w.record(&ownerChange{w: w, at: c, before: h.owner, after: p})
}

// SetKingdom moves the hex at c into kingdom id, or out of any kingdom when
// id is NoKingdom. The hex back-reference and the kingdom member set are
// updated together.
func (w *World) SetKingdom(c HexCoord, id KingdomID) {
	h := w.mustHex(c)
	if h.kingdom == id {
		return
	}
	if id != NoKingdom && w.kingdoms[id] == nil {
		panic(fmt.Sprintf("set kingdom of %v: unknown kingdom %d", c, id))
	}
	w.record(&membershipChange{w: w, at: c, before: h.kingdom, after: id})
}

// SetGold sets the treasury of kingdom id. Gold never goes below zero.
func (w *World) SetGold(id KingdomID, gold int) {
	k := w.mustKingdom(id)
	if gold < 0 {
		panic(fmt.Sprintf("set gold of kingdom %d: negative amount %d", id, gold))
	}
	if k.gold == gold {
		return
	}
	w.record(&goldChange{w: w, id: id, before: k.gold, after: gold})
}

// AddGold adds delta to the treasury of kingdom id
func (w *World) AddGold(id KingdomID, delta int) {
	w.SetGold(id, w.mustKingdom(id).gold+delta)
}

// NewKingdom registers an empty kingdom for player p. The caller is expected
// to attach hexes to it right away.
func (w *World) NewKingdom(p PlayerID, gold int) *Kingdom {
	k := &Kingdom{
		id:     w.nextKingdomID,
		player: p,
		gold:   gold,
		hexes:  make(map[HexCoord]*Hex),
	}
	w.record(&kingdomChange{w: w, k: k, create: true, nextBefore: w.nextKingdomID, nextAfter: w.nextKingdomID + 1})
	return k
}

// RemoveKingdom detaches every remaining member hex of kingdom id and then
// drops the kingdom from the world.
func (w *World) RemoveKingdom(id KingdomID) {
	k := w.mustKingdom(id)
	for _, c := range k.Coords() {
		w.SetKingdom(c, NoKingdom)
	}
	w.record(&kingdomChange{w: w, k: k, create: false, nextBefore: w.nextKingdomID, nextAfter: w.nextKingdomID})
}

// AdvanceTurn increments the turn counter
func (w *World) AdvanceTurn() {
	w.record(&turnChange{w: w, before: w.turn, after: w.turn + 1})
}

// SetTurn sets the turn counter. Used when loading a prepared world.
func (w *World) SetTurn(turn int) {
	if w.turn == turn {
		return
	}
	w.record(&turnChange{w: w, before: w.turn, after: turn})
}

func (w *World) mustHex(c HexCoord) *Hex {
	h := w.hexes[c]
	if h == nil {
		panic(fmt.Sprintf("no hex at %v", c))
	}
	return h
}

func (w *World) mustKingdom(id KingdomID) *Kingdom {
	k := w.kingdoms[id]
	if k == nil {
		panic(fmt.Sprintf("no kingdom %d", id))
	}
	return k
}
