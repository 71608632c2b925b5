package game

type Cell struct {
	Filled bool
	Color  Color
}

// Board is the playfield. Row 0 is the top.
type Board struct {
	Cells [BoardHeight][BoardWidth]Cell
}

// IsValid reports whether every cell is inside the side and bottom walls
// and does not overlap a filled cell. Cells above the top row are allowed.
func (b *Board) IsValid(cells []Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= BoardWidth {
			return false
		}
		if c.Y >= BoardHeight {
			return false
		}
		if c.Y >= 0 && b.Cells[c.Y][c.X].Filled {
			return false
		}
	}
	return true
}

// Fits reports whether p could occupy its current position.
func (b *Board) Fits(p Piece) bool {
	return b.IsValid(p.Cells())
}

// Place copies the piece into the board. Cells above the top row are dropped.
func (b *Board) Place(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 && c.Y < BoardHeight && c.X >= 0 && c.X < BoardWidth {
			b.Cells[c.Y][c.X] = Cell{Filled: true, Color: p.Color()}
		}
	}
}

// ClearFullRows removes every full row, shifts the rows above it down and
// returns how many rows were removed.
func (b *Board) ClearFullRows() int {
	var kept [BoardHeight][BoardWidth]Cell
	dst := BoardHeight - 1
	cleared := 0

	for y := BoardHeight - 1; y >= 0; y-- {
		if b.rowFull(y) {
			cleared++
			continue
		}
		kept[dst] = b.Cells[y]
		dst--
	}

	if cleared > 0 {
		b.Cells = kept
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if !b.Cells[y][x].Filled {
			return false
		}
	}
	return true
}

// Empty reports whether no cell is filled.
func (b *Board) Empty() bool {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			if b.Cells[y][x].Filled {
				return false
			}
		}
	}
	return true
}

// ToFlat returns the board as a flat array of color indices (0 = empty).
func (b *Board) ToFlat() []int {
	flat := make([]int, BoardHeight*BoardWidth)
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			if b.Cells[y][x].Filled {
				flat[y*BoardWidth+x] = int(b.Cells[y][x].Color)
			}
		}
	}
	return flat
}

// BoardFromFlat reconstructs a Board from a flat color-index array.
// Missing trailing entries are treated as empty.
func BoardFromFlat(flat []int) Board {
	var b Board
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			idx := y*BoardWidth + x
			if idx < len(flat) && flat[idx] != 0 {
				b.Cells[y][x] = Cell{Filled: true, Color: Color(flat[idx])}
			}
		}
	}
	return b
}

// Landing returns p moved straight down to the lowest row it fits in.
func (b *Board) Landing(p Piece) Piece {
	for {
		below := p
		below.Y++
		if !b.Fits(below) {
			return p
		}
		p = below
	}
}
