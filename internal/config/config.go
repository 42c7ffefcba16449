// internal/config/config.go
//
// Typed configuration for the solver CLI and HTTP server.
// Priority: ENV > YAML (CONFIG_PATH) > env-default tags.
// A .env file, when present, is loaded into the environment first.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DevJWTSecret is the fallback signing secret for local development.
const DevJWTSecret = "dev_secret_change_me"

// Config is the root configuration.
type Config struct {
	Words  WordsConfig  `yaml:"words"`
	Game   GameConfig   `yaml:"game"`
	Solver SolverConfig `yaml:"solver"`
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Daily  DailyConfig  `yaml:"daily"`
	Log    LogConfig    `yaml:"log"`
}

// WordsConfig selects the word lists. Empty files mean the embedded lists.
type WordsConfig struct {
	AnswersFile string `yaml:"answers_file" env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `yaml:"allowed_file" env:"WORDS_ALLOWED_FILE"`
	Size        int    `yaml:"size"         env:"WORD_SIZE"          env-default:"5"`
}

// GameConfig holds the per-game budget.
type GameConfig struct {
	MaxGuesses int `yaml:"max_guesses" env:"GAME_MAX_GUESSES" env-default:"6"`
}

// SolverConfig tunes selection and memoization.
type SolverConfig struct {
	Workers      int    `yaml:"workers"       env:"SOLVER_WORKERS"       env-default:"0"`
	GuessCeiling int    `yaml:"guess_ceiling" env:"SOLVER_GUESS_CEILING" env-default:"0"`
	CacheSize    int    `yaml:"cache_size"    env:"SOLVER_CACHE_SIZE"    env-default:"4096"`
	CacheDB      string `yaml:"cache_db"      env:"SOLVER_CACHE_DB"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port           string        `yaml:"port"            env:"PORT"             env-default:"5175"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"  env-default:"10s"`
	ClientOrigin   string        `yaml:"client_origin"   env:"CLIENT_ORIGIN"    env-default:"http://localhost:5173"`
	MaxGames       int           `yaml:"max_games"       env:"SERVER_MAX_GAMES" env-default:"10000"`
	GameIdle       time.Duration `yaml:"game_idle"       env:"SERVER_GAME_IDLE" env-default:"24h"`
}

// AuthConfig holds admin token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"     env-default:"dev_secret_change_me"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL" env-default:"336h"`
}

// DailyConfig salts the daily seed.
type DailyConfig struct {
	Salt string `yaml:"salt" env:"DAILY_SALT" env-default:"local_dev_salt"`
}

// LogConfig selects the zerolog level and writer.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

// Load reads .env (if any), then CONFIG_PATH or ./config.yaml, then the
// environment, and validates the result.
// An explicit CONFIG_PATH that does not exist is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks ranges and enums.
func (c *Config) Validate() error {
	var errs []error
	if c.Words.Size < 1 || c.Words.Size > 16 {
		errs = append(errs, fmt.Errorf("words.size must be 1..16, got %d", c.Words.Size))
	}
	if c.Game.MaxGuesses < 0 {
		errs = append(errs, fmt.Errorf("game.max_guesses must be >= 0, got %d", c.Game.MaxGuesses))
	}
	if c.Solver.Workers < 0 {
		errs = append(errs, fmt.Errorf("solver.workers must be >= 0, got %d", c.Solver.Workers))
	}
	if c.Solver.GuessCeiling < 0 {
		errs = append(errs, fmt.Errorf("solver.guess_ceiling must be >= 0, got %d", c.Solver.GuessCeiling))
	}
	if c.Solver.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("solver.cache_size must be >= 0, got %d", c.Solver.CacheSize))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if c.Server.GameIdle < 0 {
		errs = append(errs, errors.New("server.game_idle must be >= 0"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DevSecret reports whether the admin secret is the development default.
func (c *Config) DevSecret() bool { return c.Auth.JWTSecret == DevJWTSecret }
