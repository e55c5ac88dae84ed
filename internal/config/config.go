package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Game    GameConfig    `toml:"game"`
	Stress  StressConfig  `toml:"stress"`
	Debug   DebugConfig   `toml:"debug"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type GameConfig struct {
	Width        int           `toml:"width"`
	Height       int           `toml:"height"`
	Seed         uint64        `toml:"seed"` // 0 picks a time-based seed
	TickRate     time.Duration `toml:"tick_rate"`
	Lives        int           `toml:"lives"`
	ShipThrust   float64       `toml:"ship_thrust"`    // px/s^2
	ShipTurnRate float64       `toml:"ship_turn_rate"` // rad/s
	ShipDrag     float64       `toml:"ship_drag"`      // fraction of velocity kept per second
	ShipMaxSpeed float64       `toml:"ship_max_speed"`
	FireCooldown time.Duration `toml:"fire_cooldown"`
	BulletSpeed  float64       `toml:"bullet_speed"`
	BulletLife   time.Duration `toml:"bullet_life"`
	Invulnerable time.Duration `toml:"invulnerable"` // grace period after a respawn
	WavesFile    string        `toml:"waves_file"`   // empty uses the built-in table
}

type StressConfig struct {
	Duration   time.Duration `toml:"duration"`
	Entities   int           `toml:"entities"`
	Components int           `toml:"components"`
	Systems    int           `toml:"systems"`
	Churn      float64       `toml:"churn"` // fraction of entities replaced per tick
	Seed       uint64        `toml:"seed"`
}

type DebugConfig struct {
	Imgui bool `toml:"imgui"`
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("game size %dx%d must be positive", c.Game.Width, c.Game.Height)
	}
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("game tick_rate %s must be positive", c.Game.TickRate)
	}
	if c.Stress.Components < 1 || c.Stress.Components > 64 {
		return fmt.Errorf("stress components %d out of range 1-64", c.Stress.Components)
	}
	if c.Stress.Churn < 0 || c.Stress.Churn > 1 {
		return fmt.Errorf("stress churn %.2f out of range 0-1", c.Stress.Churn)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Game: GameConfig{
			Width:        960,
			Height:       720,
			TickRate:     time.Second / 60,
			Lives:        3,
			ShipThrust:   320,
			ShipTurnRate: 4.5,
			ShipDrag:     0.35,
			ShipMaxSpeed: 420,
			FireCooldown: 250 * time.Millisecond,
			BulletSpeed:  560,
			BulletLife:   900 * time.Millisecond,
			Invulnerable: 2 * time.Second,
		},
		Stress: StressConfig{
			Duration:   5 * time.Second,
			Entities:   10000,
			Components: 16,
			Systems:    24,
			Churn:      0.02,
			Seed:       1,
		},
		Debug: DebugConfig{
			Imgui: false,
		},
	}
}
