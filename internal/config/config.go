package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Match   MatchConfig   `mapstructure:"match"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Rules      RulesConfig      `mapstructure:"rules"`
	Vegetation VegetationConfig `mapstructure:"vegetation"`
	Map        MapConfig        `mapstructure:"map"`
}

// RulesConfig holds prices and limits
type RulesConfig struct {
	UnitPrice        int `mapstructure:"unit_price"`
	UnitMaxLevel     int `mapstructure:"unit_max_level"`
	UnitMoveSteps    int `mapstructure:"unit_move_steps"`
	TowerPrice       int `mapstructure:"tower_price"`
	TreeClearGold    int `mapstructure:"tree_clear_gold"`
	InitialGoldTurns int `mapstructure:"initial_gold_turns"`
}

// VegetationConfig holds tree growth settings
type VegetationConfig struct {
	CoastalMax     float64 `mapstructure:"coastal_max"`
	ContinentalMax float64 `mapstructure:"continental_max"`
	GrowOverTime   float64 `mapstructure:"grow_over_time"`
	InitialSpawn   float64 `mapstructure:"initial_spawn"`
}

// MapConfig holds island generation settings
type MapConfig struct {
	Radius        int     `mapstructure:"radius"`
	Seed          int64   `mapstructure:"seed"`
	Players       int     `mapstructure:"players"`
	NoiseScale    float64 `mapstructure:"noise_scale"`
	Octaves       int     `mapstructure:"octaves"`
	LandThreshold float64 `mapstructure:"land_threshold"`
}

// MatchConfig holds settings for a single AI match
type MatchConfig struct {
	MaxTurns    int    `mapstructure:"max_turns"`
	RenderEvery int    `mapstructure:"render_every"`
	Difficulty  string `mapstructure:"difficulty"`
	// Difficulties overrides Difficulty per player index
	Difficulties []string `mapstructure:"difficulties"`
}

// DifficultyFor returns the AI difficulty of the player at index
func (m MatchConfig) DifficultyFor(index int) string {
	if index >= 0 && index < len(m.Difficulties) && m.Difficulties[index] != "" {
		return m.Difficulties[index]
	}
	return m.Difficulty
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// MaxPlayers is the size of the player colour palette
const MaxPlayers = 6

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Rules defaults
	v.SetDefault("game.rules.unit_price", 10)
	v.SetDefault("game.rules.unit_max_level", 4)
	v.SetDefault("game.rules.unit_move_steps", 5)
	v.SetDefault("game.rules.tower_price", 15)
	v.SetDefault("game.rules.tree_clear_gold", 3)
	v.SetDefault("game.rules.initial_gold_turns", 5)

	// Vegetation defaults
	v.SetDefault("game.vegetation.coastal_max", 1.0)
	v.SetDefault("game.vegetation.continental_max", 0.25)
	v.SetDefault("game.vegetation.grow_over_time", 0.1)
	v.SetDefault("game.vegetation.initial_spawn", 1.0/16)

	// Map defaults
	v.SetDefault("game.map.radius", 8)
	v.SetDefault("game.map.seed", 0)
	v.SetDefault("game.map.players", 4)
	v.SetDefault("game.map.noise_scale", 0.18)
	v.SetDefault("game.map.octaves", 3)
	v.SetDefault("game.map.land_threshold", 0.35)

	// Match defaults
	v.SetDefault("match.max_turns", 200)
	v.SetDefault("match.render_every", 0)
	v.SetDefault("match.difficulty", "hard")
	v.SetDefault("match.difficulties", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/openhex")
	}

	v.SetEnvPrefix("OPENHEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the search
		// path only ConfigFileNotFoundError is tolerated
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reloaded
// config that fails validation is discarded and the previous one kept.
// Rules are read when a match is built, so edits apply to the next match.
func WatchConfig(onChange func()) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring undecodable config reload")
			return
		}
		if err := Validate(next); err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid config reload")
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	r := c.Game.Rules
	if r.UnitPrice <= 0 {
		return fmt.Errorf("game.rules.unit_price must be positive")
	}
	if r.UnitMaxLevel < 1 || r.UnitMaxLevel > 4 {
		return fmt.Errorf("game.rules.unit_max_level must be between 1 and 4")
	}
	if r.UnitMoveSteps < 1 {
		return fmt.Errorf("game.rules.unit_move_steps must be at least 1")
	}
	if r.TowerPrice <= 0 {
		return fmt.Errorf("game.rules.tower_price must be positive")
	}
	if r.TreeClearGold < 0 {
		return fmt.Errorf("game.rules.tree_clear_gold must be non-negative")
	}
	if r.InitialGoldTurns < 0 {
		return fmt.Errorf("game.rules.initial_gold_turns must be non-negative")
	}

	validateProbability := func(p float64, name string) error {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
		return nil
	}
	veg := c.Game.Vegetation
	if err := validateProbability(veg.CoastalMax, "game.vegetation.coastal_max"); err != nil {
		return err
	}
	if err := validateProbability(veg.ContinentalMax, "game.vegetation.continental_max"); err != nil {
		return err
	}
	if err := validateProbability(veg.InitialSpawn, "game.vegetation.initial_spawn"); err != nil {
		return err
	}
	if veg.GrowOverTime < 0 {
		return fmt.Errorf("game.vegetation.grow_over_time must be non-negative")
	}

	m := c.Game.Map
	if m.Radius < 1 {
		return fmt.Errorf("game.map.radius must be at least 1")
	}
	if m.Players < 2 || m.Players > MaxPlayers {
		return fmt.Errorf("game.map.players must be between 2 and %d", MaxPlayers)
	}
	if m.NoiseScale <= 0 {
		return fmt.Errorf("game.map.noise_scale must be positive")
	}
	if m.Octaves < 1 {
		return fmt.Errorf("game.map.octaves must be at least 1")
	}
	if err := validateProbability(m.LandThreshold, "game.map.land_threshold"); err != nil {
		return err
	}

	if c.Match.MaxTurns < 0 {
		return fmt.Errorf("match.max_turns must be non-negative")
	}
	if c.Match.RenderEvery < 0 {
		return fmt.Errorf("match.render_every must be non-negative")
	}
	if err := validateDifficulty(c.Match.Difficulty, "match.difficulty"); err != nil {
		return err
	}
	for i, d := range c.Match.Difficulties {
		if d == "" {
			continue
		}
		if err := validateDifficulty(d, fmt.Sprintf("match.difficulties[%d]", i)); err != nil {
			return err
		}
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}

func validateDifficulty(d, name string) error {
	switch d {
	case "easy", "hard":
		return nil
	}
	return fmt.Errorf("%s must be easy or hard, got %q", name, d)
}
