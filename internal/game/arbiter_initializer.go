package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/openhex/internal/game/processor"
	"github.com/mitchelldurbincs/openhex/internal/game/rules"
	"github.com/mitchelldurbincs/openhex/internal/game/states"
)

// ArbiterInitializer handles the wiring of a new arbiter
type ArbiterInitializer struct {
	config ArbiterConfig
	logger zerolog.Logger
}

// NewArbiterInitializer creates a new arbiter initializer
func NewArbiterInitializer(cfg ArbiterConfig) *ArbiterInitializer {
	return &ArbiterInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "Arbiter").Logger(),
	}
}

// Initialize validates the configuration and creates the arbiter
func (ai *ArbiterInitializer) Initialize(ctx context.Context) (*Arbiter, error) {
	select {
	case <-ctx.Done():
		ai.logger.Error().Err(ctx.Err()).Msg("Arbiter creation cancelled before start")
		return nil, ctx.Err()
	default:
	}

	if err := ai.validate(); err != nil {
		return nil, err
	}
	ai.setupDefaults()

	a := ai.createArbiter()
	ai.setupEventHandling(a)

	if err := a.transition(states.PhaseAwaitingTurn, "arbiter initialized"); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	a.publish(events.NewGameStartedEvent(
		a.gameID,
		len(a.players),
		a.world.Len(),
		len(a.world.Kingdoms()),
	))

	ai.logger.Info().
		Str("game_id", a.gameID).
		Int("players", len(a.players)).
		Int("hexes", a.world.Len()).
		Int("kingdoms", len(a.world.Kingdoms())).
		Msg("Arbiter created successfully")

	return a, nil
}

func (ai *ArbiterInitializer) validate() error {
	if ai.config.World == nil {
		return fmt.Errorf("arbiter needs a world")
	}
	if len(ai.config.Players) == 0 {
		return core.ErrNoPlayers
	}
	seen := make(map[core.PlayerID]bool, len(ai.config.Players))
	for _, p := range ai.config.Players {
		if seen[p.ID()] {
			return fmt.Errorf("player %d registered twice", p.ID())
		}
		seen[p.ID()] = true
	}
	return nil
}

// setupDefaults fills in missing configuration
func (ai *ArbiterInitializer) setupDefaults() {
	if ai.config.Rules.UnitPrice == 0 {
		ai.config.Rules = core.DefaultRules()
	}
	if ai.config.Rng == nil {
		ai.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ai.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ai.config.GameID == "" {
		ai.config.GameID = uuid.New().String()
	}
	if ai.config.EventBus == nil {
		ai.config.EventBus = events.NewEventBusWithLogger(ai.logger)
	}
}

// createArbiter creates the arbiter with all its components
func (ai *ArbiterInitializer) createArbiter() *Arbiter {
	cfg := ai.config
	logger := ai.logger.With().Str("game_id", cfg.GameID).Logger()

	gameContext := states.NewGameContext(cfg.GameID, len(cfg.Players), logger)

	a := &Arbiter{
		world:           cfg.World,
		rules:           cfg.Rules,
		players:         append([]Player(nil), cfg.Players...),
		rng:             cfg.Rng,
		logger:          logger,
		gameID:          cfg.GameID,
		current:         -1,
		currentKingdom:  core.NoKingdom,
		winner:          core.NoPlayer,
		maxTurns:        cfg.MaxTurns,
		history:         NewHistory(),
		legalMoves:      rules.NewLegalMoveCalculator(cfg.Rules),
		territory:       rules.NewTerritoryResolver(logger),
		winCondition:    rules.NewWinConditionChecker(logger),
		actionProcessor: processor.NewActionProcessor(logger),
		stateMachine:    states.NewStateMachine(gameContext, cfg.EventBus),
		eventBus:        cfg.EventBus,
	}

	a.productionManager = NewProductionManager(
		rules.NewVegetationGrower(cfg.Rules.Vegetation, logger),
		a.publish,
		cfg.GameID,
		logger,
	)
	a.turnProcessor = NewTurnProcessor(a)
	return a
}

// setupEventHandling attaches the optional logging subscriber
func (ai *ArbiterInitializer) setupEventHandling(a *Arbiter) {
	if !ai.config.LogEvents {
		return
	}
	logSub := subscribers.NewLoggerSubscriber("arbiter_event_logger", ai.logger, zerolog.DebugLevel)
	logSub.SetEventFilter([]string{
		events.TypeGameStarted,
		events.TypeHexCaptured,
		events.TypeKingdomsMerged,
		events.TypeKingdomSplit,
		events.TypeKingdomDestroyed,
		events.TypeUnitsStarved,
		events.TypePlayerWon,
		events.TypeActionRejected,
	})
	a.eventBus.Subscribe(logSub)
}
