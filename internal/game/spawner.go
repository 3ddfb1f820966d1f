package game

import "math/rand"

// Spawner mints randomized pieces from the catalog. Every draw goes
// through the shared rng so a fixed seed replays the same sequence.
type Spawner struct {
	cat           *Catalog
	rng           *rand.Rand
	upgradeChance float64
	spawnCol      int
	nextID        int64
}

func NewSpawner(cat *Catalog, rng *rand.Rand, upgradeChance float64, boardWidth int) *Spawner {
	return &Spawner{
		cat:           cat,
		rng:           rng,
		upgradeChance: upgradeChance,
		spawnCol:      boardWidth / 2,
		nextID:        1,
	}
}

// Spawn draws a category, then a kind, then one tier per dimension, and
// returns a fresh piece parked at the spawn cell. The caller owns
// admission onto the board.
func (s *Spawner) Spawn() *Piece {
	kinds := s.cat.Pods
	if s.rng.Float64() < s.upgradeChance {
		kinds = s.cat.Upgrades
	}
	kind := &kinds[s.rng.Intn(len(kinds))]
	p := &Piece{
		ID:   s.nextID,
		Kind: kind,
		Amount: Resources{
			CPU:     sample(s.rng, kind.Amounts.CPU),
			Memory:  sample(s.rng, kind.Amounts.Memory),
			Storage: sample(s.rng, kind.Amounts.Storage),
			GPU:     sample(s.rng, kind.Amounts.GPU),
		},
		Col: s.spawnCol,
		Row: 0,
	}
	s.nextID++
	return p
}
