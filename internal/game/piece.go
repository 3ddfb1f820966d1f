package game

// Piece is one live falling-block instance minted by the Spawner. Amount
// carries the sampled per-dimension quantities: a resource request for
// pods, a capacity grant for upgrades.
type Piece struct {
	ID     int64
	Kind   *PieceKind
	Amount Resources
	Col    int
	Row    int
}

func (p *Piece) IsPod() bool {
	return p.Kind.Category == CategoryPod
}

func (p *Piece) IsUpgrade() bool {
	return p.Kind.Category == CategoryUpgrade
}
