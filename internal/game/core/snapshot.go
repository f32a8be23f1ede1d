package core

// HexState is a value copy of a hex.
type HexState struct {
	Owner   PlayerID
	Kingdom KingdomID
	Entity  Entity
}

// KingdomState is a value copy of a kingdom.
type KingdomState struct {
	Player PlayerID
	Gold   int
	Hexes  []HexCoord
}

// Snapshot is a comparable deep copy of a world, used to check that rejected
// operations and undo leave no trace.
type Snapshot struct {
	Turn          int
	NextKingdomID KingdomID
	Hexes         map[HexCoord]HexState
	Kingdoms      map[KingdomID]KingdomState
}

// Snapshot captures the full state of the world
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Turn:          w.turn,
		NextKingdomID: w.nextKingdomID,
		Hexes:         make(map[HexCoord]HexState, len(w.hexes)),
		Kingdoms:      make(map[KingdomID]KingdomState, len(w.kingdoms)),
	}
	for c, h := range w.hexes {
		s.Hexes[c] = HexState{Owner: h.owner, Kingdom: h.kingdom, Entity: h.entity}
	}
	for id, k := range w.kingdoms {
		s.Kingdoms[id] = KingdomState{Player: k.player, Gold: k.gold, Hexes: k.Coords()}
	}
	return s
}
