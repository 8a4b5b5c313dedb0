package domain

import (
	"strings"
)

// ParsePlayer accepts "o" or "x" in either case.
func ParsePlayer(s string) (PlayerID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "o":
		return Player1, nil
	case "x":
		return Player2, nil
	default:
		return Empty, ErrInvalidPlayer
	}
}

func cellFromRune(c rune) PlayerID {
	switch c {
	case 'o', 'O':
		return Player1
	case 'x', 'X':
		return Player2
	default:
		return Empty
	}
}

// ParseRows builds a board from one string per row, top row first.
// Any character other than o/x counts as an empty cell.
func ParseRows(rows []string, next PlayerID) (*Board, error) {
	grid := make([][]PlayerID, 0, len(rows))
	for _, line := range rows {
		line = strings.TrimSpace(line)
		cells := make([]PlayerID, 0, len(line))
		for _, r := range line {
			cells = append(cells, cellFromRune(r))
		}
		grid = append(grid, cells)
	}
	return NewBoardFromGrid(grid, next)
}

// ParseBoard reads the text form printed by String. Blank lines are ignored.
func ParseBoard(text string, next PlayerID) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	return ParseRows(rows, next)
}

// ParseGameCode reads the compact web form, rows joined by ';'.
func ParseGameCode(code string, next PlayerID) (*Board, error) {
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case 'o', 'x', '.', ';':
		default:
			return nil, ErrInvalidGameCode
		}
	}
	return ParseRows(strings.Split(strings.Trim(code, ";"), ";"), next)
}

func (b *Board) Rows() []string {
	rows := make([]string, b.Height)
	buf := make([]byte, b.Width)
	for row := range b.Cells {
		for col, cell := range b.Cells[row] {
			buf[col] = cell.Symbol()
		}
		rows[row] = string(buf)
	}
	return rows
}

// String renders one line per row with a trailing newline.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n") + "\n"
}

func (b *Board) Code() string {
	return strings.Join(b.Rows(), ";")
}
