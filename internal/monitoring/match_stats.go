package monitoring

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
)

// MatchStats tallies what happens in a match from its event stream and
// logs a summary when someone wins. Undone operations are not subtracted.
type MatchStats struct {
	mu     sync.RWMutex
	logger zerolog.Logger

	gameID          string
	turns           int
	merges          int
	splits          int
	destroyed       int
	capitalsRebuilt int
	treesGrown      int
	undos           int
	winner          core.PlayerID
	finished        bool
	players         map[core.PlayerID]*PlayerTally
}

// PlayerTally holds the per player counters
type PlayerTally struct {
	Turns        int `json:"turns"`
	Captures     int `json:"captures"`
	CapitalsLost int `json:"capitals_lost"`
	UnitsBought  int `json:"units_bought"`
	TowersBought int `json:"towers_bought"`
	GoldSpent    int `json:"gold_spent"`
	Starvations  int `json:"starvations"`
	Rejections   int `json:"rejections"`
}

// MatchSummary is a point in time copy of the counters
type MatchSummary struct {
	GameID          string                        `json:"game_id"`
	Turns           int                           `json:"turns"`
	Merges          int                           `json:"merges"`
	Splits          int                           `json:"splits"`
	Destroyed       int                           `json:"destroyed"`
	CapitalsRebuilt int                           `json:"capitals_rebuilt"`
	TreesGrown      int                           `json:"trees_grown"`
	Undos           int                           `json:"undos"`
	Winner          core.PlayerID                 `json:"winner"`
	Finished        bool                          `json:"finished"`
	Players         map[core.PlayerID]PlayerTally `json:"players"`
}

// NewMatchStats creates a collector. Subscribe it to the match's bus.
func NewMatchStats(logger zerolog.Logger) *MatchStats {
	return &MatchStats{
		logger:  logger.With().Str("component", "MatchStats").Logger(),
		winner:  core.NoPlayer,
		players: make(map[core.PlayerID]*PlayerTally),
	}
}

func (ms *MatchStats) ID() string { return "match_stats" }

func (ms *MatchStats) InterestedIn(_ string) bool { return true }

func (ms *MatchStats) tally(p core.PlayerID) *PlayerTally {
	t, ok := ms.players[p]
	if !ok {
		t = &PlayerTally{}
		ms.players[p] = t
	}
	return t
}

// HandleEvent updates the counters
func (ms *MatchStats) HandleEvent(event events.Event) {
	ms.mu.Lock()
	won := false

	ms.gameID = event.GameID()
	switch e := event.(type) {
	case *events.TurnStartedEvent:
		ms.tally(e.Metadata.PlayerID).Turns++
		ms.turns = max(ms.turns, e.Metadata.Turn)
	case *events.HexCapturedEvent:
		t := ms.tally(e.Metadata.PlayerID)
		t.Captures++
		if e.CapitalTaken && e.PreviousOwner != core.NoPlayer {
			ms.tally(e.PreviousOwner).CapitalsLost++
		}
	case *events.UnitBoughtEvent:
		t := ms.tally(e.Metadata.PlayerID)
		t.UnitsBought++
		t.GoldSpent += e.Cost
	case *events.TowerBoughtEvent:
		t := ms.tally(e.Metadata.PlayerID)
		t.TowersBought++
		t.GoldSpent += e.Cost
	case *events.KingdomsMergedEvent:
		ms.merges++
	case *events.KingdomSplitEvent:
		ms.splits++
	case *events.KingdomDestroyedEvent:
		ms.destroyed++
	case *events.CapitalRebuiltEvent:
		ms.capitalsRebuilt++
	case *events.UnitsStarvedEvent:
		ms.tally(e.Metadata.PlayerID).Starvations++
	case *events.TreesGrownEvent:
		ms.treesGrown += e.Grown
	case *events.ActionRejectedEvent:
		ms.tally(e.Metadata.PlayerID).Rejections++
	case *events.HistoryEvent:
		if e.Type() == events.TypeHistoryUndone {
			ms.undos++
		}
	case *events.PlayerWonEvent:
		ms.winner = e.Metadata.PlayerID
		ms.finished = true
		ms.turns = max(ms.turns, e.Metadata.Turn)
		won = true
	}
	ms.mu.Unlock()

	if won {
		ms.LogSummary()
	}
}

// GetSummary returns a copy of the counters
func (ms *MatchStats) GetSummary() MatchSummary {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	players := make(map[core.PlayerID]PlayerTally, len(ms.players))
	for p, t := range ms.players {
		players[p] = *t
	}
	return MatchSummary{
		GameID:          ms.gameID,
		Turns:           ms.turns,
		Merges:          ms.merges,
		Splits:          ms.splits,
		Destroyed:       ms.destroyed,
		CapitalsRebuilt: ms.capitalsRebuilt,
		TreesGrown:      ms.treesGrown,
		Undos:           ms.undos,
		Winner:          ms.winner,
		Finished:        ms.finished,
		Players:         players,
	}
}

// LogSummary writes the counters at Info, one line for the match and one
// per player
func (ms *MatchStats) LogSummary() {
	s := ms.GetSummary()

	ms.logger.Info().
		Str("game_id", s.GameID).
		Int("turns", s.Turns).
		Bool("finished", s.Finished).
		Int("winner", int(s.Winner)).
		Int("merges", s.Merges).
		Int("splits", s.Splits).
		Int("kingdoms_destroyed", s.Destroyed).
		Int("capitals_rebuilt", s.CapitalsRebuilt).
		Int("trees_grown", s.TreesGrown).
		Msg("Match summary")

	ids := make([]core.PlayerID, 0, len(s.Players))
	for p := range s.Players {
		ids = append(ids, p)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, p := range ids {
		t := s.Players[p]
		ms.logger.Info().
			Str("game_id", s.GameID).
			Int("player_id", int(p)).
			Int("turns", t.Turns).
			Int("captures", t.Captures).
			Int("capitals_lost", t.CapitalsLost).
			Int("units_bought", t.UnitsBought).
			Int("towers_bought", t.TowersBought).
			Int("gold_spent", t.GoldSpent).
			Int("starvations", t.Starvations).
			Int("rejections", t.Rejections).
			Msg("Player summary")
	}
}
