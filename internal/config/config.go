package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	Redis    Redis  `yaml:"redis"`
	SQLite   SQLite `yaml:"sqlite"`
	Bot      Bot    `yaml:"bot"`
	Theme    Theme  `yaml:"theme"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"tictactoe.db"`
}

type Bot struct {
	Strategy string        `yaml:"strategy" env:"BOT_STRATEGY" env-default:"optimal"`
	Delay    time.Duration `yaml:"delay" env:"BOT_DELAY" env-default:"600ms"`
}

type Theme struct {
	MarkX     string `yaml:"mark-x" env:"THEME_MARK_X" env-default:"205"`
	MarkO     string `yaml:"mark-o" env:"THEME_MARK_O" env-default:"39"`
	Grid      string `yaml:"grid" env:"THEME_GRID" env-default:"240"`
	Cursor    string `yaml:"cursor" env:"THEME_CURSOR" env-default:"229"`
	Highlight string `yaml:"highlight" env:"THEME_HIGHLIGHT" env-default:"42"`
	Accent    string `yaml:"accent" env:"THEME_ACCENT" env-default:"212"`
}

// MustLoad - load all configurations in config.yml file.
// The file is optional for a local game, so a missing one falls back to
// environment variables and defaults.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err != nil {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from environment: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// IsEnabled reports whether a redis host is configured at all. An empty host
// keeps the game fully local.
func (that *Redis) IsEnabled() bool {
	return that.Host != ""
}

// IsEnabled reports whether sessions should be persisted in a local database
// file. An empty path falls back to in-memory sessions.
func (that *SQLite) IsEnabled() bool {
	return that.Path != ""
}
