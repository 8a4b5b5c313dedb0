package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // 'o'
	Player2 PlayerID = 2 // 'x'
)

// Opponent flips the side to move. Empty stays Empty.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (p PlayerID) Symbol() byte {
	switch p {
	case Player1:
		return 'o'
	case Player2:
		return 'x'
	default:
		return '.'
	}
}

// String returns "o", "x" or "" for Empty, the form used on the wire.
func (p PlayerID) String() string {
	if p == Empty {
		return ""
	}
	return string(p.Symbol())
}

const (
	MinRows    = 4
	MinColumns = 4
	ToWin      = 4
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidBoardDimensions Error = "board must be at least 4x4"
	ErrRaggedBoard            Error = "board rows have different widths"
	ErrFloatingPiece          Error = "piece above an empty cell"
	ErrInvalidPlayer          Error = "player must be o or x"
	ErrInvalidGameCode        Error = "game code may only contain o, x, . and ;"
	ErrInvalidMove            Error = "invalid move"
	ErrColumnFull             Error = "column is full"
	ErrGameAlreadyDecided     Error = "game already decided"
	ErrNoLegalMove            Error = "no legal move"
)
