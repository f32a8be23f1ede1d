package core

// Change is one recorded mutation. Apply performs it, Revert restores the
// value it overwrote.
type Change interface {
	Apply()
	Revert()
}

// Journal is the ordered list of changes made by one operation.
type Journal struct {
	changes []Change
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Record appends a change that has already been applied
func (j *Journal) Record(c Change) {
	j.changes = append(j.changes, c)
}

// Len returns the number of recorded changes
func (j *Journal) Len() int { return len(j.changes) }

// Revert undoes every change, newest first
func (j *Journal) Revert() {
	for i := len(j.changes) - 1; i >= 0; i-- {
		j.changes[i].Revert()
	}
}

// Replay re-applies every change, oldest first
func (j *Journal) Replay() {
	for _, c := range j.changes {
		c.Apply()
	}
}

type entityChange struct {
	w             *World
	at            HexCoord
	before, after Entity
}

func (c *entityChange) Apply()  { c.w.hexes[c.at].entity = c.after }
func (c *entityChange) Revert() { c.w.hexes[c.at].entity = c.before }

type ownerChange struct {
	w             *World
	at            HexCoord
	before, after PlayerID
}

func (c *ownerChange) Apply()  { c.w.hexes[c.at].owner = c.after }
func (c *ownerChange) Revert() { c.w.hexes[c.at].owner = c.before }

type membershipChange struct {
	w             *World
	at            HexCoord
	before, after KingdomID
}

func (c *membershipChange) Apply()  { c.w.moveHex(c.at, c.before, c.after) }
func (c *membershipChange) Revert() { c.w.moveHex(c.at, c.after, c.before) }

func (w *World) moveHex(at HexCoord, from, to KingdomID) {
	h := w.hexes[at]
	if k := w.kingdoms[from]; k != nil {
		delete(k.hexes, at)
	}
	if k := w.kingdoms[to]; k != nil {
		k.hexes[at] = h
	}
	h.kingdom = to
}

type goldChange struct {
	w             *World
	id            KingdomID
	before, after int
}

func (c *goldChange) Apply()  { c.w.kingdoms[c.id].gold = c.after }
func (c *goldChange) Revert() { c.w.kingdoms[c.id].gold = c.before }

type kingdomChange struct {
	w                     *World
	k                     *Kingdom
	create                bool
	nextBefore, nextAfter KingdomID
}

func (c *kingdomChange) Apply() {
	if c.create {
		c.w.kingdoms[c.k.id] = c.k
	} else {
		delete(c.w.kingdoms, c.k.id)
	}
	c.w.nextKingdomID = c.nextAfter
}

func (c *kingdomChange) Revert() {
	if c.create {
		delete(c.w.kingdoms, c.k.id)
	} else {
		c.w.kingdoms[c.k.id] = c.k
	}
	c.w.nextKingdomID = c.nextBefore
}

type turnChange struct {
	w             *World
	before, after int
}

func (c *turnChange) Apply()  { c.w.turn = c.after }
func (c *turnChange) Revert() { c.w.turn = c.before }
