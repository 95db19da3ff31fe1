package config

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/cooldown"
	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Discord  DiscordConfig
	Redis    RedisConfig
	Kitties  KittiesConfig
	Registry RegistryConfig
	Metrics  MetricsConfig

	// LogDevelopment switches zap to the human readable development logger
	LogDevelopment bool `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN,required,notEmpty"`
	AppID   string `env:"DISCORD_APP_ID,required,notEmpty"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands

	// RateLimit caps commands per user per RateWindow; 0 disables it
	RateLimit  int           `env:"DISCORD_RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"DISCORD_RATE_WINDOW" envDefault:"10s"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is optional; in-memory storage is used without it
	URL string `env:"REDIS_URL"`
}

// KittiesConfig points at the external kitty registry
type KittiesConfig struct {
	// BaseURL is optional; an empty static registry is used without it
	BaseURL string        `env:"KITTY_API_URL"`
	Timeout time.Duration `env:"KITTY_API_TIMEOUT" envDefault:"5s"`
}

// RegistryConfig tunes the zombie rules
type RegistryConfig struct {
	DNASeed       string        `env:"ZOMBIE_DNA_SEED"`
	CooldownBase  time.Duration `env:"ZOMBIE_COOLDOWN_BASE" envDefault:"1m"`
	CooldownStep  time.Duration `env:"ZOMBIE_COOLDOWN_STEP" envDefault:"10s"`
	CooldownFloor time.Duration `env:"ZOMBIE_COOLDOWN_FLOOR" envDefault:"1s"`
	LevelsPerStep uint32        `env:"ZOMBIE_COOLDOWN_LEVELS_PER_STEP" envDefault:"5"`
	LevelUpFee    uint64        `env:"ZOMBIE_LEVELUP_FEE_GWEI" envDefault:"1000000"`
	Withdrawer    string        `env:"ZOMBIE_WITHDRAWER"`
}

// MetricsConfig controls the prometheus endpoint
type MetricsConfig struct {
	// Addr is optional; metrics are not served without it
	Addr string `env:"METRICS_ADDR"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Registry.CooldownFloor > cfg.Registry.CooldownBase {
		return nil, fmt.Errorf("ZOMBIE_COOLDOWN_FLOOR (%s) exceeds ZOMBIE_COOLDOWN_BASE (%s)",
			cfg.Registry.CooldownFloor, cfg.Registry.CooldownBase)
	}
	if cfg.Registry.LevelUpFee == 0 {
		return nil, fmt.Errorf("ZOMBIE_LEVELUP_FEE_GWEI must be positive")
	}

	return cfg, nil
}

// Cooldown converts the registry settings for the cooldown gate
func (c *RegistryConfig) Cooldown() *cooldown.Config {
	return &cooldown.Config{
		Base:          c.CooldownBase,
		Step:          c.CooldownStep,
		Floor:         c.CooldownFloor,
		LevelsPerStep: c.LevelsPerStep,
	}
}

// Fee returns the level up fee
func (c *RegistryConfig) Fee() entities.Amount {
	return entities.Amount(c.LevelUpFee)
}

// WithdrawerAddress returns the privileged treasury address
func (c *RegistryConfig) WithdrawerAddress() entities.Address {
	return entities.Address(c.Withdrawer)
}
