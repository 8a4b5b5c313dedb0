package domain

// Board is a gravity grid. Cells[0] is the top row and Cells[Height-1] the
// bottom one. Next is the side whose turn it is.
type Board struct {
	Next   PlayerID
	Height int
	Width  int
	Cells  [][]PlayerID
}

func NewBoard(height, width int, next PlayerID) (*Board, error) {
	if height < MinRows || width < MinColumns {
		return nil, ErrInvalidBoardDimensions
	}
	if next != Player1 && next != Player2 {
		return nil, ErrInvalidPlayer
	}

	cells := make([][]PlayerID, height)
	for i := range cells {
		cells[i] = make([]PlayerID, width)
	}
	return &Board{Next: next, Height: height, Width: width, Cells: cells}, nil
}

// NewBoardFromGrid validates an externally supplied grid and copies it into
// a new Board.
func NewBoardFromGrid(grid [][]PlayerID, next PlayerID) (*Board, error) {
	if len(grid) < MinRows || len(grid[0]) < MinColumns {
		return nil, ErrInvalidBoardDimensions
	}

	b, err := NewBoard(len(grid), len(grid[0]), next)
	if err != nil {
		return nil, err
	}

	for row := range grid {
		if len(grid[row]) != b.Width {
			return nil, ErrRaggedBoard
		}
		for col, cell := range grid[row] {
			if cell != Empty && cell != Player1 && cell != Player2 {
				return nil, ErrInvalidPlayer
			}
			b.Cells[row][col] = cell
		}
	}

	// every piece must rest on another piece or the bottom row
	for col := 0; col < b.Width; col++ {
		for row := 0; row < b.Height-1; row++ {
			if b.Cells[row][col] != Empty && b.Cells[row+1][col] == Empty {
				return nil, ErrFloatingPiece
			}
		}
	}

	return b, nil
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	cells := make([][]PlayerID, len(b.Cells))
	for i := range b.Cells {
		cells[i] = make([]PlayerID, len(b.Cells[i]))
		copy(cells[i], b.Cells[i])
	}
	return &Board{Next: b.Next, Height: b.Height, Width: b.Width, Cells: cells}
}

// PlayInPlace drops the mover's disk into column and hands the turn over.
// On error the board is left untouched.
func (b *Board) PlayInPlace(column int) error {
	if column < 0 || column >= b.Width {
		return ErrInvalidMove
	}

	// shifting the disk from top to bottom till it
	// reaches the end or another disk
	for row := b.Height - 1; row >= 0; row-- {
		if b.Cells[row][column] == Empty {
			b.Cells[row][column] = b.Next
			b.Next = b.Next.Opponent()
			return nil
		}
	}

	return ErrColumnFull
}

// Play returns a new board with the move applied; b is never modified.
func (b *Board) Play(column int) (*Board, error) {
	g := b.Clone()
	if err := g.PlayInPlace(column); err != nil {
		return nil, err
	}
	return g, nil
}

// LegalMoves lists, in ascending order, every column whose top cell is free.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, b.Width)
	for col := 0; col < b.Width; col++ {
		if b.Cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) IsFull() bool {
	for col := 0; col < b.Width; col++ {
		if b.Cells[0][col] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) PieceCount() int {
	count := 0
	for _, row := range b.Cells {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

func (b *Board) Equal(other *Board) bool {
	if other == nil || b.Next != other.Next || b.Height != other.Height || b.Width != other.Width {
		return false
	}
	for row := range b.Cells {
		for col := range b.Cells[row] {
			if b.Cells[row][col] != other.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

// DiffColumn returns the column where next holds one more piece than b, or
// -1 when the boards do not differ by exactly one drop.
func (b *Board) DiffColumn(next *Board) int {
	column := -1
	for row := range b.Cells {
		for col := range b.Cells[row] {
			if b.Cells[row][col] == next.Cells[row][col] {
				continue
			}
			if b.Cells[row][col] != Empty || column != -1 {
				return -1
			}
			column = col
		}
	}
	return column
}
