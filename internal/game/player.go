package game

import (
	"github.com/mitchelldurbincs/openhex/internal/game/core"
)

// Player is anything that can take a turn: an AI policy or an input
// adapter. NotifyTurn is called once each time the player gains control.
// It may call any Arbiter operation and should eventually lead to EndTurn;
// an interactive player simply returns and ends the turn later.
type Player interface {
	ID() core.PlayerID
	NotifyTurn(a *Arbiter)
}

// PlayerFunc adapts a function into a Player
type PlayerFunc struct {
	PlayerID core.PlayerID
	OnTurn   func(a *Arbiter)
}

func (p PlayerFunc) ID() core.PlayerID { return p.PlayerID }

func (p PlayerFunc) NotifyTurn(a *Arbiter) {
	if p.OnTurn != nil {
		p.OnTurn(a)
	}
}
