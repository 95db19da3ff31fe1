package cooldown

import (
	"time"

	"github.com/KirkDiggler/crypto-zombies/internal/entities"
	zerr "github.com/KirkDiggler/crypto-zombies/internal/errors"
)

const (
	DefaultBase          = time.Minute
	DefaultStep          = 10 * time.Second
	DefaultFloor         = time.Second
	DefaultLevelsPerStep = 5
)

// Config describes how cooldowns shrink as zombies level up
type Config struct {
	// Base is the cooldown of a level 1 zombie
	Base time.Duration

	// Step is removed from Base once per LevelsPerStep levels
	Step time.Duration

	// Floor is the shortest cooldown any level can reach
	Floor time.Duration

	LevelsPerStep uint32
}

// Gate decides when a zombie may act again
type Gate struct {
	cfg Config
}

// NewGate creates a gate, filling unset fields with defaults
func NewGate(cfg *Config) *Gate {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	if c.Base <= 0 {
		c.Base = DefaultBase
	}
	if c.Step <= 0 {
		c.Step = DefaultStep
	}
	if c.Floor <= 0 {
		c.Floor = DefaultFloor
	}
	if c.Floor > c.Base {
		c.Floor = c.Base
	}
	if c.LevelsPerStep == 0 {
		c.LevelsPerStep = DefaultLevelsPerStep
	}

	return &Gate{cfg: c}
}

// Duration returns the cooldown for a zombie at level
func (g *Gate) Duration(level uint32) time.Duration {
	if level < 1 {
		level = 1
	}

	steps := time.Duration((level - 1) / g.cfg.LevelsPerStep)
	if steps == 0 {
		return g.cfg.Base
	}

	// compare against the headroom first so steps*Step cannot overflow
	headroom := g.cfg.Base - g.cfg.Floor
	if steps >= headroom/g.cfg.Step+1 {
		return g.cfg.Floor
	}

	d := g.cfg.Base - steps*g.cfg.Step
	if d < g.cfg.Floor {
		return g.cfg.Floor
	}
	return d
}

// IsReady reports whether z may act at now
func (g *Gate) IsReady(z *entities.Zombie, now time.Time) bool {
	return !now.Before(z.ReadyTime)
}

// Check returns a not ready error when z is still cooling down
func (g *Gate) Check(z *entities.Zombie, now time.Time) error {
	if g.IsReady(z, now) {
		return nil
	}

	return zerr.NotReadyf("zombie %d is not ready until %s", z.ID, z.ReadyTime.Format(time.RFC3339)).
		WithMeta("zombie_id", z.ID).
		WithMeta("ready_time", z.ReadyTime)
}

// Trigger starts a new cooldown for z at now
func (g *Gate) Trigger(z *entities.Zombie, now time.Time) {
	z.ReadyTime = now.Add(g.Duration(z.Level))
}
