package core

import "sort"

// Kingdom is a connected group of one player's hexes sharing a treasury.
type Kingdom struct {
	id     KingdomID
	player PlayerID
	gold   int
	hexes  map[HexCoord]*Hex
}

func (k *Kingdom) ID() KingdomID    { return k.id }
func (k *Kingdom) Player() PlayerID { return k.player }
func (k *Kingdom) Gold() int        { return k.gold }
func (k *Kingdom) Size() int        { return len(k.hexes) }

// Contains reports whether the coordinate is a member of the kingdom
func (k *Kingdom) Contains(c HexCoord) bool {
	_, ok := k.hexes[c]
	return ok
}

// Coords returns the member coordinates in row-major order
func (k *Kingdom) Coords() []HexCoord {
	coords := make([]HexCoord, 0, len(k.hexes))
	for c := range k.hexes {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return coords
}

// Hexes returns the member hexes in row-major order
func (k *Kingdom) Hexes() []*Hex {
	out := make([]*Hex, 0, len(k.hexes))
	for _, c := range k.Coords() {
		out = append(out, k.hexes[c])
	}
	return out
}

// Capital returns the hex holding the kingdom's capital, if any
func (k *Kingdom) Capital() (*Hex, bool) {
	for _, h := range k.Hexes() {
		if h.entity.IsCapital() {
			return h, true
		}
	}
	return nil, false
}

// Units returns the hexes holding units
func (k *Kingdom) Units() []*Hex {
	var out []*Hex
	for _, h := range k.Hexes() {
		if h.entity.IsUnit() {
			out = append(out, h)
		}
	}
	return out
}

// Income is one gold per hex that is not covered by a tree or a grave.
func (k *Kingdom) Income() int {
	income := 0
	for _, h := range k.hexes {
		if !h.entity.IsTree() && !h.entity.IsGrave() {
			income++
		}
	}
	return income
}

// Outcome is the total upkeep of the kingdom's units.
func (k *Kingdom) Outcome() int {
	outcome := 0
	for _, h := range k.hexes {
		if h.entity.IsUnit() {
			outcome += UnitUpkeep(h.entity.Level)
		}
	}
	return outcome
}

// Balance is the gold the kingdom would have after the next settlement.
func (k *Kingdom) Balance() int {
	return k.gold + k.Income() - k.Outcome()
}
