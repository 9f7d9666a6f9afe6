package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/gobblet-go/internal/config"
	"github.com/mitchelldurbincs/gobblet-go/internal/game"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/ai"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events"
	"github.com/mitchelldurbincs/gobblet-go/internal/game/events/subscribers"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay, loads config.<env>.yaml (empty for none)")
	mode := flag.String("mode", "", "Game mode: pvp, pve or cvc (empty to use config default)")
	difficulty := flag.String("difficulty", "", "Opponent difficulty: easy, medium or hard (empty to use config default)")
	seed := flag.Int64("seed", 0, "Seed for the opponent's random choices (0 to use config default)")
	aiOnly := flag.Bool("ai-only", false, "Let the computer play both sides")
	logLevel := flag.String("log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	noColor := flag.Bool("no-color", false, "Disable colored board output")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags override the config file; Set validates each value
	overrides := map[string]interface{}{}
	if *mode != "" {
		overrides["game.mode"] = strings.ToLower(*mode)
	}
	if *aiOnly {
		overrides["game.mode"] = game.ModeCvC.String()
	}
	if *difficulty != "" {
		overrides["opponent.difficulty"] = strings.ToLower(*difficulty)
	}
	if *seed != 0 {
		overrides["opponent.seed"] = *seed
	}
	if *logLevel != "" {
		overrides["logging.level"] = *logLevel
	}
	for key, value := range overrides {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Invalid command line override")
		}
	}

	cfg := config.Get()
	colored := !*noColor && isTerminal(os.Stdout)
	setupLogging(cfg.Logging, colored)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionConfig, err := game.SessionConfigFromConfig(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game settings")
	}
	if cfg.Development.LogEvents {
		eventLogger := subscribers.NewLoggerSubscriber("cli_event_logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetEventFilter([]string{
			events.TypeSessionStarted,
			events.TypeMovePlayed,
			events.TypeMoveRejected,
			events.TypeTurnPassed,
			events.TypeGameEnded,
			events.TypeDifficultyChanged,
		})
		sessionConfig.Subscribers = append(sessionConfig.Subscribers, eventLogger)
	}

	session, err := game.NewSession(ctx, sessionConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session")
	}

	if *watch {
		watchDifficulty(session)
	}

	r := newREPL(session, os.Stdin, colorable.NewColorableStdout(), colored, cfg.Development.ShowHistory)
	if err := r.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Session ended with error")
		stop()
		os.Exit(1)
	}

	log.Info().
		Str("score", session.Scoreboard().String()).
		Msg("Goodbye")
}

// watchDifficulty applies opponent.difficulty changes from the config file
// to the running session
func watchDifficulty(session *game.Session) {
	if config.ConfigFilePath() == "" {
		log.Warn().Msg("No config file loaded, nothing to watch")
		return
	}
	config.WatchConfig(func(c *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		d, err := ai.ParseDifficulty(c.Opponent.Difficulty)
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid difficulty")
			return
		}
		if err := session.SetDifficulty(d); err != nil {
			log.Warn().Err(err).Msg("Failed to apply difficulty")
		}
	})
	log.Info().Str("path", config.ConfigFilePath()).Msg("Watching config file")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func setupLogging(cfg config.LoggingConfig, colored bool) {
	// Parse log level
	var logLevel zerolog.Level
	switch strings.ToLower(cfg.Level) {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so they do not interleave with the board on stdout
	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStderr(),
		TimeFormat: time.Kitchen,
		NoColor:    !colored || !isTerminal(os.Stderr),
	})
}
