package game

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Arbiter-local state lives outside the World but is undone with it, so
// these changes go into the same journal as the world mutations.

type selectionChange struct {
	a             *Arbiter
	before, after Selection
}

func (c *selectionChange) Apply()  { c.a.selection = c.after }
func (c *selectionChange) Revert() { c.a.selection = c.before }

type currentKingdomChange struct {
	a             *Arbiter
	before, after core.KingdomID
}

func (c *currentKingdomChange) Apply()  { c.a.currentKingdom = c.after }
func (c *currentKingdomChange) Revert() { c.a.currentKingdom = c.before }

func (a *Arbiter) setSelection(s Selection) {
	if a.selection == s {
		return
	}
	a.record(&selectionChange{a: a, before: a.selection, after: s})
}

func (a *Arbiter) setCurrentKingdomID(id core.KingdomID) {
	if a.currentKingdom == id {
		return
	}
	a.record(&currentKingdomChange{a: a, before: a.currentKingdom, after: id})
}

func (a *Arbiter) record(c core.Change) {
	c.Apply()
	if j := a.world.Journal(); j != nil {
		j.Record(c)
	}
}
