package core

// Components flood-fills coords into groups connected through same-owner
// adjacency, restricted to coords. Seeds are taken in the given order and
// each group lists its hexes in discovery order.
func (w *World) Components(coords []HexCoord) [][]HexCoord {
	member := make(map[HexCoord]bool, len(coords))
	for _, c := range coords {
		member[c] = true
	}
	visited := make(map[HexCoord]bool, len(coords))

	var components [][]HexCoord
	for _, seed := range coords {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		comp := []HexCoord{seed}
		for i := 0; i < len(comp); i++ {
			for _, n := range w.SameOwnerNeighbors(comp[i]) {
				if member[n.coord] && !visited[n.coord] {
					visited[n.coord] = true
					comp = append(comp, n.coord)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// FormKingdoms groups every owned, kingdom-less hex into kingdoms: each
// same-owner connected group of two or more hexes becomes a new kingdom with
// an empty treasury. Single hexes stay kingdom-less.
func (w *World) FormKingdoms() []*Kingdom {
	var loose []HexCoord
	for _, c := range w.coords {
		h := w.hexes[c]
		if h.owner != NoPlayer && h.kingdom == NoKingdom {
			loose = append(loose, c)
		}
	}

	var formed []*Kingdom
	for _, comp := range w.Components(loose) {
		if len(comp) < 2 {
			continue
		}
		k := w.NewKingdom(w.hexes[comp[0]].owner, 0)
		for _, c := range comp {
			w.SetKingdom(c, k.id)
		}
		formed = append(formed, k)
	}
	return formed
}

// IsConnected reports whether the kingdom forms a single same-owner
// component.
func (k *Kingdom) IsConnected(w *World) bool {
	return len(w.Components(k.Coords())) <= 1
}
