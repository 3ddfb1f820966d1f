package game

import (
	"math/rand"
	"testing"
)

func testBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	return NewBoard(w, h, DefaultCatalog(), rand.New(rand.NewSource(5)))
}

func landedPiece(b *Board, cat *Catalog, id int64, col, row int) *Piece {
	p := &Piece{ID: id, Kind: cat.KindByName("frontend"), Col: col, Row: row}
	b.SetLanded(p, row)
	return p
}

func TestNewBoardLayout(t *testing.T) {
	b := testBoard(t, 6, 10)
	if len(b.Nodes) != 6 {
		t.Fatalf("nodes = %d, want one per column", len(b.Nodes))
	}
	for c := 0; c < b.W; c++ {
		if cell := b.Cell(c, b.H-1); cell.Kind != CellNode || cell.Node != c {
			t.Errorf("bottom cell %d = %+v, want node %d", c, cell, c)
		}
	}
	for row := 0; row < b.H-1; row++ {
		for c := 0; c < b.W; c++ {
			if b.Cell(c, row).Kind != CellEmpty {
				t.Errorf("cell (%d,%d) not empty on a fresh board", c, row)
			}
		}
	}
}

func TestIsValidPosition(t *testing.T) {
	b := testBoard(t, 6, 10)
	landedPiece(b, DefaultCatalog(), 1, 2, 5)

	tests := []struct {
		name     string
		col, row int
		want     bool
	}{
		{"empty interior", 0, 0, true},
		{"above the top", 3, -1, true},
		{"left of the board", -1, 0, false},
		{"right of the board", 6, 0, false},
		{"below the floor", 0, 10, false},
		{"node row", 0, 9, false},
		{"landed pod", 2, 5, false},
		{"beside the pod", 3, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsValidPosition(tt.col, tt.row); got != tt.want {
				t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestBoardMove(t *testing.T) {
	b := testBoard(t, 4, 8)
	cat := DefaultCatalog()
	p := &Piece{ID: 1, Kind: cat.KindByName("frontend"), Col: 0, Row: 0}

	if got := b.Move(p, -1, 0); got != Blocked || p.Col != 0 {
		t.Fatalf("move off the left edge = %v, col %d", got, p.Col)
	}
	if got := b.Move(p, 1, 0); got != Moved || p.Col != 1 {
		t.Fatalf("move right = %v, col %d", got, p.Col)
	}
	if got := b.Move(p, 0, 1); got != Moved || p.Row != 1 {
		t.Fatalf("move down = %v, row %d", got, p.Row)
	}

	landedPiece(b, cat, 2, 1, 2)
	if got := b.Move(p, 0, 1); got != Blocked || p.Row != 1 {
		t.Fatalf("move onto a landed pod = %v, row %d", got, p.Row)
	}
}

func TestFindLandingRow(t *testing.T) {
	b := testBoard(t, 4, 8)
	cat := DefaultCatalog()

	p := &Piece{ID: 1, Kind: cat.KindByName("frontend"), Col: 2, Row: 0}
	if got := b.FindLandingRow(p); got != b.H-2 {
		t.Fatalf("landing row on an empty column = %d, want %d", got, b.H-2)
	}

	landedPiece(b, cat, 2, 2, b.H-2)
	if got := b.FindLandingRow(p); got != b.H-3 {
		t.Fatalf("landing row on a stack = %d, want %d", got, b.H-3)
	}
}

func TestResolveLandingTarget(t *testing.T) {
	b := testBoard(t, 4, 8)
	cat := DefaultCatalog()

	got := b.ResolveLandingTarget(1, 0)
	if !got.OnNode || got.Row != b.H-2 {
		t.Fatalf("empty column target = %+v", got)
	}

	landedPiece(b, cat, 1, 1, b.H-2)
	got = b.ResolveLandingTarget(1, 0)
	if got.OnNode || got.Row != b.H-3 {
		t.Fatalf("stacked column target = %+v", got)
	}
}

func TestClearFullRows(t *testing.T) {
	b := testBoard(t, 3, 6)
	cat := DefaultCatalog()

	// bottom playable row full, one pod above it in column 0
	for c := 0; c < 3; c++ {
		landedPiece(b, cat, int64(c+1), c, 4)
	}
	surviving := landedPiece(b, cat, 9, 0, 3)

	if !b.IsRowFull(4) {
		t.Fatal("row 4 should be full")
	}
	if b.IsRowFull(5) {
		t.Fatal("the node row must never report full")
	}

	if got := b.ClearFullRows(); got != 1 {
		t.Fatalf("cleared = %d, want 1", got)
	}
	// the survivor shifted down into the cleared row
	if cell := b.Cell(0, 4); cell.Kind != CellPod || cell.Piece.ID != surviving.ID {
		t.Fatalf("cell (0,4) after shift = %+v", cell)
	}
	if b.Cell(1, 4).Kind != CellEmpty {
		t.Fatal("cleared row not emptied")
	}
	if b.Cell(0, 5).Kind != CellNode {
		t.Fatal("node row disturbed by the shift")
	}
}

func TestClearFullRowsStacked(t *testing.T) {
	b := testBoard(t, 2, 6)
	cat := DefaultCatalog()

	// two adjacent full rows clear in one sweep
	id := int64(1)
	for _, row := range []int{3, 4} {
		for c := 0; c < 2; c++ {
			landedPiece(b, cat, id, c, row)
			id++
		}
	}
	if got := b.ClearFullRows(); got != 2 {
		t.Fatalf("cleared = %d, want 2", got)
	}
	if got := b.StackHeight(0) + b.StackHeight(1); got != 0 {
		t.Fatalf("pods left after sweep = %d", got)
	}
}

func TestStackHeight(t *testing.T) {
	b := testBoard(t, 3, 6)
	cat := DefaultCatalog()
	if got := b.StackHeight(1); got != 0 {
		t.Fatalf("fresh stack height = %d", got)
	}
	landedPiece(b, cat, 1, 1, 4)
	landedPiece(b, cat, 2, 1, 3)
	if got := b.StackHeight(1); got != 2 {
		t.Fatalf("stack height = %d, want 2", got)
	}
}
