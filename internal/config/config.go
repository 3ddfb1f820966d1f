// Package config loads the optional YAML tuning file. Every field has a
// default matching the shipped engine rules, so partial files only
// override what they name.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ThanhChinhBK/kubebucket/internal/game"
)

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type SpawnConfig struct {
	UpgradeChance float64 `yaml:"upgrade_chance"`
}

type PolicyConfig struct {
	RotateEvery int `yaml:"rotate_every"`
	LimitCPU    int `yaml:"limit_cpu"`
	LimitMemory int `yaml:"limit_memory"`
}

type ScoringConfig struct {
	Base            int     `yaml:"base"`
	AffinityBonus   int     `yaml:"affinity_bonus"`
	HeadroomBonus   int     `yaml:"headroom_bonus"`
	BalanceBonus    int     `yaml:"balance_bonus"`
	ConstraintBonus int     `yaml:"constraint_bonus"`
	LineBonus       int     `yaml:"line_bonus"`
	SpreadBonus     int     `yaml:"spread_bonus"`
	HeadroomCutoff  float64 `yaml:"headroom_cutoff"`
	BalanceMinAvg   float64 `yaml:"balance_min_avg"`
	BalanceSpread   float64 `yaml:"balance_spread"`
	SpreadVariance  float64 `yaml:"spread_variance"`
	LevelStep       int     `yaml:"level_step"`
}

// SpeedConfig sets the gravity period. The engine itself has no pacing;
// the app ticks it every BaseMs. PerLevelMs is zero by default (the drop
// speed does not change with level); setting it shortens the period per
// level, never under MinMs.
type SpeedConfig struct {
	BaseMs     int `yaml:"base_ms"`
	MinMs      int `yaml:"min_ms"`
	PerLevelMs int `yaml:"per_level_ms"`
}

type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Policy  PolicyConfig  `yaml:"policy"`
	Scoring ScoringConfig `yaml:"scoring"`
	Speed   SpeedConfig   `yaml:"speed"`
}

// Default mirrors the engine's shipped tuning.
func Default() Config {
	r := game.DefaultRules()
	return Config{
		Board: BoardConfig{Width: r.BoardWidth, Height: r.BoardHeight},
		Spawn: SpawnConfig{UpgradeChance: r.UpgradeChance},
		Policy: PolicyConfig{
			RotateEvery: r.ConstraintEvery,
			LimitCPU:    r.LimitCPU,
			LimitMemory: r.LimitMemory,
		},
		Scoring: ScoringConfig{
			Base:            r.BaseScore,
			AffinityBonus:   r.AffinityBonus,
			HeadroomBonus:   r.HeadroomBonus,
			BalanceBonus:    r.BalanceBonus,
			ConstraintBonus: r.ConstraintBonus,
			LineBonus:       r.LineBonus,
			SpreadBonus:     r.SpreadBonus,
			HeadroomCutoff:  r.HeadroomCutoff,
			BalanceMinAvg:   r.BalanceMinAvg,
			BalanceSpread:   r.BalanceSpread,
			SpreadVariance:  r.SpreadVariance,
			LevelStep:       r.LevelStep,
		},
		Speed: SpeedConfig{BaseMs: 800, MinMs: 200, PerLevelMs: 0},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Rules maps the file onto engine rules.
func (c Config) Rules() game.Rules {
	return game.Rules{
		BoardWidth:      c.Board.Width,
		BoardHeight:     c.Board.Height,
		UpgradeChance:   c.Spawn.UpgradeChance,
		ConstraintEvery: c.Policy.RotateEvery,
		LimitCPU:        c.Policy.LimitCPU,
		LimitMemory:     c.Policy.LimitMemory,
		HeadroomCutoff:  c.Scoring.HeadroomCutoff,
		BalanceMinAvg:   c.Scoring.BalanceMinAvg,
		BalanceSpread:   c.Scoring.BalanceSpread,
		SpreadVariance:  c.Scoring.SpreadVariance,
		BaseScore:       c.Scoring.Base,
		AffinityBonus:   c.Scoring.AffinityBonus,
		HeadroomBonus:   c.Scoring.HeadroomBonus,
		BalanceBonus:    c.Scoring.BalanceBonus,
		ConstraintBonus: c.Scoring.ConstraintBonus,
		LineBonus:       c.Scoring.LineBonus,
		SpreadBonus:     c.Scoring.SpreadBonus,
		LevelStep:       c.Scoring.LevelStep,
	}
}

// TickInterval is the gravity period at a level.
func (c Config) TickInterval(level int) time.Duration {
	ms := c.Speed.BaseMs - (level-1)*c.Speed.PerLevelMs
	if ms < c.Speed.MinMs {
		ms = c.Speed.MinMs
	}
	return time.Duration(ms) * time.Millisecond
}
