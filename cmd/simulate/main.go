package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/config"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/core"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events"
	"github.com/mitchelldurbincs/PursuitEvasionSim/internal/game/events/subscribers"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay (loads config.<env>.yaml)")
	width := flag.Int("width", -1, "Board width (-1 to use config default)")
	height := flag.Int("height", -1, "Board height (-1 to use config default)")
	rewards := flag.Int("rewards", -1, "Number of rewards (-1 to use config default)")
	hazards := flag.Int("hazards", -1, "Number of hazards (-1 to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 to use config, then time)")
	maxTurns := flag.Int("max-turns", -1, "Turn cap per game (-1 to use config default, 0 for none)")
	games := flag.Int("games", -1, "Number of games; each extra game is a reset (-1 to use config default)")
	first := flag.String("first", "", "First mover: pursuer or evader (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	quiet := flag.Bool("quiet", false, "Do not print the board")
	watch := flag.Bool("watch", false, "Reload render and delay settings when the config file changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags override config
	overrideInt := func(key string, val int) {
		if val >= 0 {
			config.Set(key, val)
		}
	}
	overrideInt("game.board.width", *width)
	overrideInt("game.board.height", *height)
	overrideInt("game.placement.rewards", *rewards)
	overrideInt("game.placement.hazards", *hazards)
	overrideInt("simulation.max_turns", *maxTurns)
	overrideInt("simulation.games", *games)
	if *seed != 0 {
		config.Set("simulation.seed", *seed)
	}
	if *first != "" {
		config.Set("game.agents.first_mover", *first)
	}
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}
	if *quiet {
		config.Set("simulation.render", false)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := newRunSettings(cfg.Simulation)
	if *watch {
		config.WatchConfig(func(c *config.Config) {
			settings.apply(c.Simulation)
			log.Info().
				Bool("render", c.Simulation.Render).
				Int("turn_delay_ms", c.Simulation.TurnDelayMs).
				Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	seedValue := cfg.Simulation.Seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seedValue).Msg("Starting simulation")

	gameCfg, err := buildGameConfig(cfg, rand.New(rand.NewSource(seedValue)), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game configuration")
	}
	if cfg.Events.Enabled {
		attachEventLogger(gameCfg.EventBus, cfg.Events)
	}

	stats, err := simulate(ctx, gameCfg, cfg.Simulation.Games, cfg.Simulation.MaxTurns, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	fmt.Printf("Games: %d  pursuer wins: %d  evader wins: %d  undecided: %d  avg turns: %.1f\n",
		stats.GamesStarted,
		stats.Agents[core.Pursuer].Wins,
		stats.Agents[core.Evader].Wins,
		stats.Undecided(),
		stats.AverageTurns())
}

// runSettings holds the values a config reload may change mid-run
type runSettings struct {
	render    atomic.Bool
	color     atomic.Bool
	turnDelay atomic.Int64
}

func newRunSettings(sc config.SimulationConfig) *runSettings {
	s := &runSettings{}
	s.apply(sc)
	return s
}

func (s *runSettings) apply(sc config.SimulationConfig) {
	s.render.Store(sc.Render)
	s.color.Store(sc.Color)
	s.turnDelay.Store(int64(time.Duration(sc.TurnDelayMs) * time.Millisecond))
}

// buildGameConfig maps the loaded configuration onto an engine configuration
func buildGameConfig(cfg *config.Config, rng *rand.Rand, logger zerolog.Logger) (game.GameConfig, error) {
	first, err := core.ParseAgent(cfg.Game.Agents.FirstMover)
	if err != nil {
		return game.GameConfig{}, err
	}

	gc := game.DefaultGameConfig(cfg.Game.Board.Width, cfg.Game.Board.Height,
		cfg.Game.Placement.Rewards, cfg.Game.Placement.Hazards)
	gc.Board.AttemptsPerItem = cfg.Game.Placement.AttemptsPerItem
	if start, ok := config.Start(cfg.Game.Agents.PursuerStart); ok {
		gc.Board.PursuerStart = start
	}
	if start, ok := config.Start(cfg.Game.Agents.EvaderStart); ok {
		gc.Board.EvaderStart = start
	}
	gc.FirstMover = first
	gc.Rng = rng
	gc.Logger = logger
	gc.EventBus = events.NewEventBusWithLogger(logger)
	return gc, nil
}

func attachEventLogger(bus *events.EventBus, ec config.EventsConfig) {
	level, err := zerolog.ParseLevel(ec.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	sub := subscribers.NewLoggerSubscriber("event-logger", log.Logger, level)
	sub.SetEventFilter(ec.Types)
	sub.SetDevMode(ec.DevMode)
	bus.Subscribe(sub)
}

// simulate plays the requested number of games on one engine, resetting
// between games. maxTurns <= 0 means no cap.
func simulate(ctx context.Context, gc game.GameConfig, games, maxTurns int, settings *runSettings) (subscribers.GameStats, error) {
	stats := subscribers.NewStatsSubscriber("simulate-stats")
	gc.EventBus.Subscribe(stats)
	defer gc.EventBus.Unsubscribe(stats.ID())

	engine, err := game.NewEngine(ctx, gc)
	if err != nil {
		return stats.Stats(), err
	}

	for i := 0; i < games; i++ {
		if i > 0 {
			if err := engine.Reset(ctx); err != nil {
				return stats.Stats(), err
			}
		}

		if err := playGame(ctx, engine, maxTurns, settings); err != nil {
			return stats.Stats(), err
		}
	}
	return stats.Stats(), nil
}

func playGame(ctx context.Context, engine *game.Engine, maxTurns int, settings *runSettings) error {
	printBoard(engine, settings, "Initial board")

	for !engine.IsGameOver() && (maxTurns <= 0 || engine.Turn() < maxTurns) {
		agent, err := engine.Step(ctx)
		if err != nil {
			return err
		}
		printBoard(engine, settings, fmt.Sprintf("Turn %d (%s)", engine.Turn(), agent))

		if delay := time.Duration(settings.turnDelay.Load()); delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if engine.IsGameOver() {
		log.Info().
			Str("game_id", engine.GameID()).
			Str("winner", engine.GetWinner().String()).
			Int("turns", engine.Turn()).
			Msg("Game over")
	} else {
		log.Info().
			Str("game_id", engine.GameID()).
			Int("max_turns", maxTurns).
			Msg("Game reached maximum turns")
	}
	return nil
}

func printBoard(engine *game.Engine, settings *runSettings, title string) {
	if !settings.render.Load() {
		return
	}
	fmt.Printf("%s:\n%s\n", title, game.RenderText(engine.Board(), settings.color.Load()))
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
