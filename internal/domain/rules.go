package domain

// Judge reports the side owning four aligned cells, or Empty if nobody does.
// Lines are scanned rows first, then columns, then the "\" diagonals and
// finally the "/" diagonals; the first run found is returned.
func Judge(b *Board) PlayerID {
	// rows, sliding a 4-wide window left to right
	for row := 0; row < b.Height; row++ {
		var count [3]int
		for col := 0; col < b.Width; col++ {
			count[b.Cells[row][col]]++
			if col >= ToWin {
				count[b.Cells[row][col-ToWin]]--
			}
			if winner := fullWindow(count); winner != Empty {
				return winner
			}
		}
	}

	// columns, sliding top to bottom
	for col := 0; col < b.Width; col++ {
		var count [3]int
		for row := 0; row < b.Height; row++ {
			count[b.Cells[row][col]]++
			if row >= ToWin {
				count[b.Cells[row-ToWin][col]]--
			}
			if winner := fullWindow(count); winner != Empty {
				return winner
			}
		}
	}

	// diagonal \ (top-left to bottom-right)
	for row := 0; row+ToWin <= b.Height; row++ {
		for col := 0; col+ToWin <= b.Width; col++ {
			if winner := b.line(row, col, 1, 1); winner != Empty {
				return winner
			}
		}
	}

	// diagonal / (top-right to bottom-left)
	for row := 0; row+ToWin <= b.Height; row++ {
		for col := ToWin - 1; col < b.Width; col++ {
			if winner := b.line(row, col, 1, -1); winner != Empty {
				return winner
			}
		}
	}

	return Empty
}

func fullWindow(count [3]int) PlayerID {
	if count[Player1] == ToWin {
		return Player1
	}
	if count[Player2] == ToWin {
		return Player2
	}
	return Empty
}

// line returns the owner of the four cells starting at (row, col) and
// stepping by (dRow, dCol), or Empty if they are not all the same side.
func (b *Board) line(row, col, dRow, dCol int) PlayerID {
	first := b.Cells[row][col]
	if first == Empty {
		return Empty
	}
	for k := 1; k < ToWin; k++ {
		if b.Cells[row+k*dRow][col+k*dCol] != first {
			return Empty
		}
	}
	return first
}
