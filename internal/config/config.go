package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Events     EventsConfig     `mapstructure:"events"`
}

// GameConfig holds game setup configuration
type GameConfig struct {
	Board     BoardConfig     `mapstructure:"board"`
	Placement PlacementConfig `mapstructure:"placement"`
	Agents    AgentsConfig    `mapstructure:"agents"`
}

// BoardConfig holds the grid dimensions
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// PlacementConfig holds random placement settings
type PlacementConfig struct {
	Rewards         int `mapstructure:"rewards"`
	Hazards         int `mapstructure:"hazards"`
	AttemptsPerItem int `mapstructure:"attempts_per_item"`
}

// AgentsConfig holds turn order and start cells. An empty start keeps the
// default corner for that agent.
type AgentsConfig struct {
	FirstMover   string `mapstructure:"first_mover"`
	PursuerStart []int  `mapstructure:"pursuer_start"`
	EvaderStart  []int  `mapstructure:"evader_start"`
}

// SimulationConfig holds settings for the headless simulator
type SimulationConfig struct {
	MaxTurns    int   `mapstructure:"max_turns"`
	Seed        int64 `mapstructure:"seed"`
	TurnDelayMs int   `mapstructure:"turn_delay_ms"`
	Render      bool  `mapstructure:"render"`
	Color       bool  `mapstructure:"color"`
	Games       int   `mapstructure:"games"`
}

// LoggingConfig holds application logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig holds event logger settings
type EventsConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	LogLevel string   `mapstructure:"log_level"`
	DevMode  bool     `mapstructure:"dev_mode"`
	Types    []string `mapstructure:"types"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper

	// overlayFile is the environment overlay merged over the base file, if any
	overlayFile string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Board defaults
	v.SetDefault("game.board.width", 10)
	v.SetDefault("game.board.height", 10)

	// Placement defaults
	v.SetDefault("game.placement.rewards", 3)
	v.SetDefault("game.placement.hazards", 12)
	v.SetDefault("game.placement.attempts_per_item", 64)

	// Agent defaults
	v.SetDefault("game.agents.first_mover", "evader")
	v.SetDefault("game.agents.pursuer_start", []int{})
	v.SetDefault("game.agents.evader_start", []int{})

	// Simulation defaults
	v.SetDefault("simulation.max_turns", 200)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.turn_delay_ms", 0)
	v.SetDefault("simulation.render", true)
	v.SetDefault("simulation.color", true)
	v.SetDefault("simulation.games", 1)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Event logger defaults
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.log_level", "debug")
	v.SetDefault("events.dev_mode", false)
	v.SetDefault("events.types", []string{})
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	overlayFile = ""

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pursuit-evasion")
	}

	v.SetEnvPrefix("PES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A specific file that is missing falls back to defaults as well
		if configPath == "" && !errors.As(err, &notFound) {
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
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config. The
// overlay is looked up beside the base file, or in the working directory when
// no base file was found. A missing overlay is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base := v.ConfigFileUsed(); base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}

	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error checking environment config %s: %w", envFile, err)
	}

	if err := mergeOverlay(v, envFile); err != nil {
		return err
	}
	overlayFile = envFile

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// mergeOverlay reads path with its own viper instance so the target keeps
// its base config file for watching.
func mergeOverlay(target *viper.Viper, path string) error {
	overlay := viper.New()
	overlay.SetConfigFile(path)
	if err := overlay.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading environment config %s: %w", path, err)
	}
	if err := target.MergeConfigMap(overlay.AllSettings()); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", path, err)
	}
	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the base config file. An environment
// overlay merged before the call is applied again after every reload. onChange
// runs only when the reloaded config is valid; the previous config stays
// active otherwise.
func WatchConfig(onChange func(*Config), onError func(error)) {
	watched := v
	overlay := overlayFile
	watched.OnConfigChange(func(e fsnotify.Event) {
		var err error
		if overlay != "" {
			err = mergeOverlay(watched, overlay)
		}
		next := &Config{}
		if err == nil {
			err = watched.Unmarshal(next)
		}
		if err == nil {
			err = Validate(next)
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		cfg = next
		if onChange != nil {
			onChange(next)
		}
	})
	watched.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Board
	if c.Game.Board.Width <= 0 || c.Game.Board.Height <= 0 {
		return fmt.Errorf("game.board dimensions must be positive")
	}

	// Placement
	if c.Game.Placement.Rewards < 0 {
		return fmt.Errorf("game.placement.rewards must be non-negative")
	}
	if c.Game.Placement.Hazards < 0 {
		return fmt.Errorf("game.placement.hazards must be non-negative")
	}
	if c.Game.Placement.AttemptsPerItem <= 0 {
		return fmt.Errorf("game.placement.attempts_per_item must be positive")
	}

	// Agents
	if _, err := core.ParseAgent(c.Game.Agents.FirstMover); err != nil {
		return fmt.Errorf("game.agents.first_mover: %w", err)
	}
	validateStart := func(xy []int, name string) error {
		if len(xy) == 0 {
			return nil
		}
		if len(xy) != 2 {
			return fmt.Errorf("%s must be [x, y]", name)
		}
		if !core.NewCell(xy[0], xy[1]).IsValid(c.Game.Board.Width, c.Game.Board.Height) {
			return fmt.Errorf("%s %v is outside the board", name, xy)
		}
		return nil
	}
	if err := validateStart(c.Game.Agents.PursuerStart, "game.agents.pursuer_start"); err != nil {
		return err
	}
	if err := validateStart(c.Game.Agents.EvaderStart, "game.agents.evader_start"); err != nil {
		return err
	}

	// Simulation
	if c.Simulation.MaxTurns < 0 {
		return fmt.Errorf("simulation.max_turns must be non-negative")
	}
	if c.Simulation.TurnDelayMs < 0 {
		return fmt.Errorf("simulation.turn_delay_ms must be non-negative")
	}
	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be at least 1")
	}

	// Logging
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be console or json")
	}
	if _, err := zerolog.ParseLevel(c.Events.LogLevel); err != nil {
		return fmt.Errorf("events.log_level: %w", err)
	}

	return nil
}

// Start converts an [x, y] config entry into a cell; ok is false when unset.
func Start(xy []int) (core.Cell, bool) {
	if len(xy) != 2 {
		return core.Cell{}, false
	}
	return core.NewCell(xy[0], xy[1]), true
}
