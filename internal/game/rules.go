package game

import "fmt"

// Rules collects the engine's tunable numbers. The zero value is not
// playable; start from DefaultRules and override fields.
type Rules struct {
	BoardWidth  int
	BoardHeight int

	UpgradeChance   float64 // probability a spawn is an upgrade piece
	ConstraintEvery int     // pieces placed between policy re-rolls

	LimitCPU    int // resource-limit policy thresholds
	LimitMemory int

	HeadroomCutoff float64 // every node below this utilization earns the headroom bonus
	BalanceMinAvg  float64 // balance bonus needs mean utilization above this
	BalanceSpread  float64 // and max-min utilization below this
	SpreadVariance float64 // cpu-ratio variance below this earns the spread bonus

	BaseScore       int
	AffinityBonus   int
	HeadroomBonus   int
	BalanceBonus    int
	ConstraintBonus int
	LineBonus       int
	SpreadBonus     int

	LevelStep int // points per level
}

// DefaultRules is the shipped arcade tuning.
func DefaultRules() Rules {
	return Rules{
		BoardWidth:      8,
		BoardHeight:     14,
		UpgradeChance:   1.0 / 6.0,
		ConstraintEvery: 4,
		LimitCPU:        4,
		LimitMemory:     8,
		HeadroomCutoff:  0.9,
		BalanceMinAvg:   0.3,
		BalanceSpread:   0.3,
		SpreadVariance:  0.1,
		BaseScore:       100,
		AffinityBonus:   200,
		HeadroomBonus:   150,
		BalanceBonus:    200,
		ConstraintBonus: 100,
		LineBonus:       400,
		SpreadBonus:     200,
		LevelStep:       1000,
	}
}

// Validate rejects rules the engine cannot run with.
func (r Rules) Validate() error {
	if r.BoardWidth < 2 {
		return fmt.Errorf("board width %d too small", r.BoardWidth)
	}
	if r.BoardHeight < 3 {
		return fmt.Errorf("board height %d too small", r.BoardHeight)
	}
	if r.UpgradeChance < 0 || r.UpgradeChance > 1 {
		return fmt.Errorf("upgrade chance %.2f outside [0,1]", r.UpgradeChance)
	}
	if r.LevelStep <= 0 {
		return fmt.Errorf("level step %d must be positive", r.LevelStep)
	}
	return nil
}
