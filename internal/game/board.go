package game

import "math/rand"

// CellKind discriminates board cells.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellPod
	CellNode
)

// Cell is one grid slot. Piece is set for CellPod, Node holds the column
// index for CellNode.
type Cell struct {
	Kind  CellKind
	Piece *Piece
	Node  int
}

// MoveResult reports the outcome of a movement attempt.
type MoveResult int

const (
	Moved MoveResult = iota
	Blocked
)

// LandingTarget describes where a descending piece in a column ends up.
// Row is the occupancy row just above the obstruction; OnNode is true
// when the obstruction is the node bucket itself.
type LandingTarget struct {
	Row    int
	OnNode bool
}

// Board is the W by H grid. The bottom row permanently holds one node
// per column; it is never cleared and never entered by pieces.
type Board struct {
	W, H  int
	cells [][]Cell // [row][col], row 0 at the top
	Nodes []*Node
}

// NewBoard builds the grid and samples node capacities from the catalog.
func NewBoard(w, h int, cat *Catalog, rng *rand.Rand) *Board {
	b := &Board{W: w, H: h}
	b.cells = make([][]Cell, h)
	for r := range b.cells {
		b.cells[r] = make([]Cell, w)
	}
	b.Nodes = make([]*Node, w)
	for c := 0; c < w; c++ {
		b.Nodes[c] = NewNode(c, cat, rng)
		b.cells[h-1][c] = Cell{Kind: CellNode, Node: c}
	}
	return b
}

// Cell returns the slot at (col, row).
func (b *Board) Cell(col, row int) Cell {
	return b.cells[row][col]
}

func (b *Board) occupied(col, row int) bool {
	return b.cells[row][col].Kind != CellEmpty
}

// IsValidPosition reports whether a piece may sit at (col, row). Rows
// above the top are fine, positions outside the columns or past the
// floor are not, and node cells count as occupied.
func (b *Board) IsValidPosition(col, row int) bool {
	if col < 0 || col >= b.W {
		return false
	}
	if row >= b.H {
		return false
	}
	if row < 0 {
		return true
	}
	return !b.occupied(col, row)
}

// Move shifts the piece if the destination is valid. A blocked downward
// move means the piece has landed and the caller must place it; blocked
// horizontal moves are inert.
func (b *Board) Move(p *Piece, dCol, dRow int) MoveResult {
	if b.IsValidPosition(p.Col+dCol, p.Row+dRow) {
		p.Col += dCol
		p.Row += dRow
		return Moved
	}
	return Blocked
}

// FindLandingRow scans straight down to the deepest valid row for the
// piece. Hard drops teleport there before locking.
func (b *Board) FindLandingRow(p *Piece) int {
	row := p.Row
	for b.IsValidPosition(p.Col, row+1) {
		row++
	}
	return row
}

// ResolveLandingTarget walks down from startRow to the first obstruction
// in the column. The node row always terminates the walk.
func (b *Board) ResolveLandingTarget(col, startRow int) LandingTarget {
	for row := startRow + 1; row < b.H; row++ {
		switch b.cells[row][col].Kind {
		case CellNode:
			return LandingTarget{Row: row - 1, OnNode: true}
		case CellPod:
			return LandingTarget{Row: row - 1, OnNode: false}
		}
	}
	return LandingTarget{Row: startRow, OnNode: true}
}

// SetLanded writes the piece into the grid at its occupancy row.
func (b *Board) SetLanded(p *Piece, row int) {
	p.Row = row
	b.cells[row][p.Col] = Cell{Kind: CellPod, Piece: p}
}

// IsRowFull reports whether every column of a non-node row holds a
// landed pod. The node row is never full.
func (b *Board) IsRowFull(row int) bool {
	if row < 0 || row >= b.H-1 {
		return false
	}
	for c := 0; c < b.W; c++ {
		if b.cells[row][c].Kind != CellPod {
			return false
		}
	}
	return true
}

// ClearRow removes one row and shifts everything above it down, leaving
// a fresh empty row at the top. Node ledgers are untouched: cleared pods
// keep their booked capacity.
func (b *Board) ClearRow(row int) {
	for r := row; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = make([]Cell, b.W)
}

// ClearFullRows sweeps every clearable row, re-checking an index after a
// clear since the rows above shift into it. Returns the number cleared.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for row := b.H - 2; row >= 0; {
		if b.IsRowFull(row) {
			b.ClearRow(row)
			cleared++
			continue
		}
		row--
	}
	return cleared
}

// StackHeight is the number of landed pods in the column.
func (b *Board) StackHeight(col int) int {
	count := 0
	for row := 0; row < b.H-1; row++ {
		if b.cells[row][col].Kind == CellPod {
			count++
		}
	}
	return count
}
