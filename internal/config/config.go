package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Opponent    OpponentConfig    `mapstructure:"opponent"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game setup settings
type GameConfig struct {
	// FirstPlayer is "A" or "B"
	FirstPlayer string `mapstructure:"first_player"`
	// Mode is "pvp", "pve" or "cvc"
	Mode   string       `mapstructure:"mode"`
	Supply SupplyConfig `mapstructure:"supply"`
}

// SupplyConfig holds the starting piece counts per size, for each side
type SupplyConfig struct {
	Small  int `mapstructure:"small"`
	Medium int `mapstructure:"medium"`
	Large  int `mapstructure:"large"`
}

// OpponentConfig holds computer opponent settings
type OpponentConfig struct {
	// Color is the side the computer plays in pve mode, "A" or "B"
	Color      string `mapstructure:"color"`
	Difficulty string `mapstructure:"difficulty"`
	// MoveDelayMs is the pause before each computer move
	MoveDelayMs int `mapstructure:"move_delay_ms"`
	// Seed for the opponent's random source; 0 seeds from the clock
	Seed int64 `mapstructure:"seed"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	// LogEvents attaches a logging subscriber to the session event bus
	LogEvents bool `mapstructure:"log_events"`
	// ShowHistory prints the move history after every move
	ShowHistory bool `mapstructure:"show_history"`
}

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.first_player", "A")
	v.SetDefault("game.mode", "pve")
	v.SetDefault("game.supply.small", 2)
	v.SetDefault("game.supply.medium", 2)
	v.SetDefault("game.supply.large", 2)

	v.SetDefault("opponent.color", "B")
	v.SetDefault("opponent.difficulty", "medium")
	v.SetDefault("opponent.move_delay_ms", 1000)
	v.SetDefault("opponent.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.log_events", false)
	v.SetDefault("development.show_history", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/gobblet")
	}

	nv.SetEnvPrefix("GOBBLET")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && isMissingFile(err):
			// Specific file requested but not found - use defaults
		case configPath == "" && errors.As(err, &notFound):
			// No config in the default locations - use defaults
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg = nv, c
	mu.Unlock()
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config. The
// overlay is looked up next to the loaded config file, or in the working
// directory when none was found.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	nv := GetViper()
	dir := "."
	base := nv.ConfigFileUsed()
	if base != "" {
		dir = filepath.Dir(base)
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	nv.SetConfigFile(envFile)
	err := nv.MergeInConfig()
	if base != "" {
		// keep watching and reporting the base file
		nv.SetConfigFile(base)
	}
	if err != nil && !isMissingFile(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	return reload(nv)
}

// Set allows runtime config updates. The value is validated with the rest of
// the config; an invalid value is kept out of the decoded struct.
func Set(key string, value interface{}) error {
	nv := GetViper()
	nv.Set(key, value)
	return reload(nv)
}

func reload(nv *viper.Viper) error {
	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	mu.Lock()
	cfg = c
	mu.Unlock()
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// new config, or the error that kept the previous one in place.
func WatchConfig(onChange func(*Config, error)) {
	nv := GetViper()
	nv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		err := reload(nv)
		if onChange != nil {
			onChange(Get(), err)
		}
	})
	nv.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if !oneOf(c.Game.FirstPlayer, "A", "B") {
		return fmt.Errorf("game.first_player must be A or B, got %q", c.Game.FirstPlayer)
	}
	if !oneOf(strings.ToLower(c.Game.Mode), "pvp", "pve", "cvc") {
		return fmt.Errorf("game.mode must be pvp, pve or cvc, got %q", c.Game.Mode)
	}
	s := c.Game.Supply
	if s.Small < 0 || s.Medium < 0 || s.Large < 0 {
		return fmt.Errorf("game.supply counts must be non-negative")
	}
	if s.Small+s.Medium+s.Large == 0 {
		return fmt.Errorf("game.supply must hold at least one piece")
	}

	if !oneOf(c.Opponent.Color, "A", "B") {
		return fmt.Errorf("opponent.color must be A or B, got %q", c.Opponent.Color)
	}
	if !oneOf(strings.ToLower(c.Opponent.Difficulty), "easy", "medium", "hard") {
		return fmt.Errorf("opponent.difficulty must be easy, medium or hard, got %q", c.Opponent.Difficulty)
	}
	if c.Opponent.MoveDelayMs < 0 {
		return fmt.Errorf("opponent.move_delay_ms must be non-negative")
	}

	if !oneOf(strings.ToLower(c.Logging.Level), "trace", "debug", "info", "warn", "error") {
		return fmt.Errorf("logging.level must be trace, debug, info, warn or error, got %q", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, "console", "json") {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// isMissingFile reports whether err means the config file does not exist
func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
