package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/openhex/internal/ai"
	"github.com/mitchelldurbincs/openhex/internal/config"
	"github.com/mitchelldurbincs/openhex/internal/game"
	"github.com/mitchelldurbincs/openhex/internal/game/core"
	"github.com/mitchelldurbincs/openhex/internal/game/events"
	"github.com/mitchelldurbincs/openhex/internal/game/mapgen"
	"github.com/mitchelldurbincs/openhex/internal/game/scenario"
	"github.com/mitchelldurbincs/openhex/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Map and AI seed (0 to use config, or the clock if config has none)")
	radius := flag.Int("radius", -1, "Island radius (-1 to use config default)")
	players := flag.Int("players", -1, "Number of AI players (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit, 0 for none (-1 to use config default)")
	scenarioPath := flag.String("scenario", "", "Load the starting position from a scenario file instead of generating an island")
	renderEvery := flag.Int("render-every", -1, "Print the board every N turns, 0 to disable (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	env := flag.String("env", os.Getenv("OPENHEX_ENV"), "Merge config.<env>.yaml over the loaded config")
	matches := flag.Int("matches", 1, "Number of matches to play back to back")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags win over the config file, including after a hot reload
	applyFlags := func(cfg *config.Config) error {
		if *radius != -1 {
			cfg.Game.Map.Radius = *radius
		}
		if *players != -1 {
			cfg.Game.Map.Players = *players
		}
		if *maxTurns != -1 {
			cfg.Match.MaxTurns = *maxTurns
		}
		if *renderEvery != -1 {
			cfg.Match.RenderEvery = *renderEvery
		}
		if *logLevel != "" {
			cfg.Logging.Level = *logLevel
		}
		return config.Validate(cfg)
	}

	cfg := config.Get()
	if err := applyFlags(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger := setupLogging(cfg.Logging)

	// Use config defaults if not overridden by flags
	if *seed == 0 {
		*seed = cfg.Game.Map.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if path := config.ConfigFilePath(); path != "" && *matches > 1 {
		config.WatchConfig(func() {
			logger.Info().Str("file", path).Msg("Config reloaded, changes apply to the next match")
		})
	}

	for i := 0; i < *matches; i++ {
		cfg := *config.Get()
		if err := applyFlags(&cfg); err != nil {
			logger.Fatal().Err(err).Msg("Invalid configuration")
		}
		cfg.Game.Map.Seed = *seed + int64(i)

		m, err := newMatch(&cfg, *scenarioPath, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to set up match")
		}
		if *matches > 1 {
			fmt.Fprintf(os.Stdout, "=== Match %d of %d (seed %d) ===\n", i+1, *matches, cfg.Game.Map.Seed)
		}
		if err := m.run(os.Stdout); err != nil {
			logger.Fatal().Err(err).Msg("Match failed")
		}
	}
}

func setupLogging(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
	return log.Logger
}

// match wires one AI-only game: world, players, arbiter and statistics
type match struct {
	cfg     *config.Config
	world   *core.World
	arbiter *game.Arbiter
	stats   *monitoring.MatchStats
	out     io.Writer
	logger  zerolog.Logger
}

func newMatch(cfg *config.Config, scenarioPath string, logger zerolog.Logger) (*match, error) {
	seed := cfg.Game.Map.Seed
	rules := game.RulesFromConfig(cfg)

	var (
		w     *core.World
		seats int
		first core.PlayerID
	)
	if scenarioPath != "" {
		s, err := scenario.LoadFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		if w, err = s.World(); err != nil {
			return nil, err
		}
		seats, first = s.Players, s.FirstPlayer()
		logger.Info().Str("scenario", s.Name).Int("players", seats).Msg("Loaded scenario")
	} else {
		gen := mapgen.NewGenerator(rand.New(rand.NewSource(seed)), logger)
		var err error
		if w, err = gen.Generate(mapgen.MapConfigFrom(cfg.Game.Map, rules)); err != nil {
			return nil, err
		}
		seats = cfg.Game.Map.Players
		logger.Info().
			Int64("seed", seed).
			Int("radius", cfg.Game.Map.Radius).
			Int("hexes", w.Len()).
			Msg("Generated island")
	}

	// turn order starts at the first player and wraps around
	order := make([]game.Player, 0, seats)
	for i := 0; i < seats; i++ {
		id := core.PlayerID((int(first) + i) % seats)
		strategy, err := ai.NewStrategy(cfg.Match.DifficultyFor(int(id)))
		if err != nil {
			return nil, err
		}
		order = append(order, ai.NewPlayer(id, strategy, uint64(seed)+uint64(id), logger))
	}

	m := &match{cfg: cfg, world: w, logger: logger}
	m.stats = monitoring.NewMatchStats(logger)
	bus := events.NewEventBusWithLogger(logger)
	bus.Subscribe(m.stats)

	arbiter, err := game.NewArbiter(context.Background(), game.ArbiterConfig{
		World:     w,
		Players:   order,
		Rules:     rules,
		MaxTurns:  cfg.Match.MaxTurns,
		Rng:       rand.New(rand.NewSource(seed)),
		Logger:    logger,
		EventBus:  bus,
		LogEvents: cfg.Logging.Events,
	})
	if err != nil {
		return nil, err
	}
	m.arbiter = arbiter

	if every := cfg.Match.RenderEvery; every > 0 {
		bus.SubscribeFunc(events.TypeTurnStarted, func(e events.Event) {
			ts := e.(*events.TurnStartedEvent)
			if ts.Metadata.PlayerID == first && ts.Metadata.Turn%every == 0 && m.out != nil {
				fmt.Fprintf(m.out, "Turn %d:\n%s\n", ts.Metadata.Turn, game.Render(w, game.RenderOptions{Color: true}))
			}
		})
	}
	return m, nil
}

// run plays the match to its end and prints the final board and a summary
func (m *match) run(out io.Writer) error {
	m.out = out
	fmt.Fprintf(out, "Initial board:\n%s\n", game.Render(m.world, game.RenderOptions{Color: true}))

	if err := m.arbiter.Start(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Final board:\n%s", game.Render(m.world, game.RenderOptions{Color: true, Legend: true}))
	fmt.Fprintln(out, m.summary())

	if !m.arbiter.IsGameOver() {
		m.stats.LogSummary()
	}
	return nil
}

func (m *match) summary() string {
	turn := m.world.Turn()
	var s string
	if winner, ok := m.arbiter.Winner(); ok {
		s = fmt.Sprintf("Player %d conquered the island on the %s turn\n", winner, humanize.Ordinal(turn+1))
	} else {
		s = fmt.Sprintf("No winner after %s turns\n", humanize.Comma(int64(turn)))
	}

	for _, ps := range m.arbiter.Stats() {
		status := "ALIVE"
		if !ps.Alive {
			status = "DEAD"
		}
		s += fmt.Sprintf("Player %d: %s hexes, %d kingdoms, %d units, %d towers, %s gold (%+d/turn) %s\n",
			ps.PlayerID,
			humanize.Comma(int64(ps.Hexes)),
			ps.Kingdoms,
			ps.Units,
			ps.Towers,
			humanize.Comma(int64(ps.Gold)),
			ps.Balance(),
			status)
	}

	sum := m.stats.GetSummary()
	s += fmt.Sprintf("%s captures across %s merges and %s splits, %s kingdoms destroyed",
		humanize.Comma(int64(totalCaptures(sum))),
		humanize.Comma(int64(sum.Merges)),
		humanize.Comma(int64(sum.Splits)),
		humanize.Comma(int64(sum.Destroyed)))
	return s
}

func totalCaptures(s monitoring.MatchSummary) int {
	n := 0
	for _, t := range s.Players {
		n += t.Captures
	}
	return n
}
