package ai

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/openhex/internal/game"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
)

// Player drives a Strategy for one seat of a match. It satisfies
// game.Player and never touches the world except through arbiter actions.
type Player struct {
	id       core.PlayerID
	strategy Strategy
	rng      *rand.Rand
	ctx      context.Context
	logger   zerolog.Logger
}

// NewPlayer creates an AI player. The seed makes its random choices
// reproducible.
func NewPlayer(id core.PlayerID, strategy Strategy, seed uint64, logger zerolog.Logger) *Player {
	return &Player{
		id:       id,
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)),
		ctx:      context.Background(),
		logger: logger.With().
			Str("component", "AIPlayer").
			Int("player_id", int(id)).
			Str("strategy", strategy.Name()).
			Logger(),
	}
}

// WithContext sets the context actions are processed under. A cancelled
// context makes the player pass.
func (p *Player) WithContext(ctx context.Context) *Player {
	p.ctx = ctx
	return p
}

func (p *Player) ID() core.PlayerID { return p.id }

// Strategy returns the policy the player follows
func (p *Player) Strategy() Strategy { return p.strategy }

// NotifyTurn plays every kingdom of the player in id order and ends the
// turn. An illegal action only abandons the plan of the kingdom it came
// from.
func (p *Player) NotifyTurn(a *game.Arbiter) {
	t := &Turn{arbiter: a, ctx: p.ctx, player: p.id, rng: p.rng}

	var ids []core.KingdomID
	for _, k := range a.World().KingdomsOf(p.id) {
		ids = append(ids, k.ID())
	}

	for _, id := range ids {
		if p.ctx.Err() != nil {
			break
		}
		if a.World().Kingdom(id) == nil {
			continue
		}
		if err := p.strategy.PlayKingdom(t, id); err != nil {
			p.logger.Warn().Err(err).
				Int("kingdom_id", int(id)).
				Int("turn", a.World().Turn()).
				Msg("AI illegal move, abandoning kingdom plan")
		}
	}

	if err := a.EndTurn(); err != nil {
		p.logger.Warn().Err(err).Msg("AI could not end turn")
	}
}

// Turn is what a strategy sees while planning one kingdom: read access to
// the world and a way to submit actions.
type Turn struct {
	arbiter *game.Arbiter
	ctx     context.Context
	player  core.PlayerID
	rng     *rand.Rand
}

func (t *Turn) World() *core.World    { return t.arbiter.World() }
func (t *Turn) Rules() core.Rules     { return t.arbiter.Rules() }
func (t *Turn) Player() core.PlayerID { return t.player }
func (t *Turn) Rand() *rand.Rand      { return t.rng }

func (t *Turn) Legal() *rules.LegalMoveCalculator { return t.arbiter.Legal() }

// Kingdom returns the kingdom with id if it still belongs to the player
func (t *Turn) Kingdom(id core.KingdomID) *core.Kingdom {
	k := t.World().Kingdom(id)
	if k == nil || k.Player() != t.player {
		return nil
	}
	return k
}

// Move submits a unit move
func (t *Turn) Move(from, to core.HexCoord) error {
	return t.apply(&core.MoveUnitAction{PlayerID: t.player, From: from, To: to})
}

// Buy submits a direct unit purchase
func (t *Turn) Buy(kingdom core.KingdomID, target core.HexCoord, level int) error {
	return t.apply(&core.BuyUnitAction{PlayerID: t.player, Kingdom: kingdom, Target: target, Level: level})
}

// BuildTower submits a direct tower purchase
func (t *Turn) BuildTower(kingdom core.KingdomID, target core.HexCoord) error {
	return t.apply(&core.BuyTowerAction{PlayerID: t.player, Kingdom: kingdom, Target: target})
}

func (t *Turn) apply(action core.Action) error {
	_, err := t.arbiter.ProcessActions(t.ctx, []core.Action{action})
	return err
}
