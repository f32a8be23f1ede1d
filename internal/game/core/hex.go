package core

// PlayerID identifies a player by seat index. NoPlayer marks unowned land.
type PlayerID int

// KingdomID is a handle into the World's kingdom table. NoKingdom marks a
// hex that belongs to no kingdom.
type KingdomID int

const (
	NoPlayer  PlayerID  = -1
	NoKingdom KingdomID = 0
)

// Hex is one land cell. Hexes are allocated once per match by the World and
// only mutated through World methods so every change can be journaled.
type Hex struct {
	coord   HexCoord
	owner   PlayerID
	kingdom KingdomID
	entity  Entity
}

func (h *Hex) Coord() HexCoord    { return h.coord }
func (h *Hex) Owner() PlayerID    { return h.owner }
func (h *Hex) Kingdom() KingdomID { return h.kingdom }
func (h *Hex) Entity() Entity     { return h.entity }
func (h *Hex) HasKingdom() bool   { return h.kingdom != NoKingdom }
func (h *Hex) IsOwnedBy(p PlayerID) bool {
	return h.owner == p
}
