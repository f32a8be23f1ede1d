package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level(event)).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("hexes", e.Hexes).
			Int("kingdoms", e.Kingdoms)

	case *events.TurnStartedEvent:
		logMeta(logEvent, e.Metadata)

	case *events.TurnEndedEvent:
		logMeta(logEvent, e.Metadata).Int("actions_count", e.ActionsCount)

	case *events.UnitBoughtEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Int("unit_level", e.Level).
			Int("cost", e.Cost)

	case *events.TowerBoughtEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Int("cost", e.Cost)

	case *events.UnitPlacedEvent:
		logMeta(logEvent, e.Metadata).
			Stringer("at", e.At).
			Stringer("unit", e.Unit).
			Bool("merged", e.Merged)

	case *events.TowerPlacedEvent:
		logMeta(logEvent, e.Metadata).Stringer("at", e.At)

	case *events.HexCapturedEvent:
		logMeta(logEvent, e.Metadata).
			Stringer("at", e.At).
			Int("unit_level", e.Level).
			Int("previous_owner", int(e.PreviousOwner)).
			Bool("capital_taken", e.CapitalTaken)

	case *events.KingdomsMergedEvent:
		logMeta(logEvent, e.Metadata).
			Int("survivor", int(e.Survivor)).
			Int("absorbed", len(e.Absorbed)).
			Int("gold_gained", e.GoldGained)

	case *events.KingdomSplitEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Int("created", len(e.Created)).
			Int("stranded", e.Stranded)

	case *events.KingdomDestroyedEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Str("reason", e.Reason)

	case *events.CapitalRebuiltEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Stringer("at", e.At)

	case *events.UnitsStarvedEvent:
		logMeta(logEvent, e.Metadata).
			Int("kingdom", int(e.Kingdom)).
			Int("units", e.Units)

	case *events.TreesGrownEvent:
		logMeta(logEvent, e.Metadata).
			Int("grown", e.Grown).
			Int("rotted", e.Rotted)

	case *events.PlayerWonEvent:
		logMeta(logEvent, e.Metadata)

	case *events.ActionRejectedEvent:
		logMeta(logEvent, e.Metadata).
			Str("operation", e.Operation).
			Str("category", e.Category).
			Str("reason", e.Reason)

	case *events.HistoryEvent:
		logMeta(logEvent, e.Metadata).Str("operation", e.Operation)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

// Rejections are raised to warn when the subscriber logs below it
func (ls *LoggerSubscriber) level(event events.Event) zerolog.Level {
	if event.Type() == events.TypeActionRejected && ls.logLevel < zerolog.WarnLevel {
		return zerolog.WarnLevel
	}
	return ls.logLevel
}

func logMeta(e *zerolog.Event, meta events.EventMetadata) *zerolog.Event {
	return e.Int("player_id", int(meta.PlayerID)).Int("turn", meta.Turn)
}
