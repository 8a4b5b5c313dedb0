package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBoardRoundTripsThroughString(t *testing.T) {
	text := ".......\n.......\n.......\n...x...\n..oo...\n.xoxo..\n"
	b, err := ParseBoard(text, Player2)
	require.NoError(t, err)
	require.Equal(t, 6, b.Height)
	require.Equal(t, 7, b.Width)
	require.Equal(t, Player1, b.Cells[4][2])
	require.Equal(t, Player2, b.Cells[3][3])
	require.Equal(t, text, b.String())
}

func TestParseBoardTreatsUnknownCharactersAsEmpty(t *testing.T) {
	b, err := ParseBoard("  ____\n____\n_O__\nXo-x\n\n", Player1)
	require.NoError(t, err)
	require.Equal(t, "....\n....\n.o..\nxo.x\n", b.String())
}

func TestParseRowsCountsCharactersNotBytes(t *testing.T) {
	b, err := ParseRows([]string{"é·..", "○○○○", "....", "oxé."}, Player1)
	require.NoError(t, err)
	require.Equal(t, 4, b.Width)
	require.Equal(t, "....\n....\n....\nox..\n", b.String())
}

func TestParseBoardErrors(t *testing.T) {
	_, err := ParseBoard("...\n...\n...\n...\n", Player1)
	require.ErrorIs(t, err, ErrInvalidBoardDimensions)

	_, err = ParseBoard("....\n....\n....\n", Player1)
	require.ErrorIs(t, err, ErrInvalidBoardDimensions)

	_, err = ParseBoard("....\n.....\n....\n....\n", Player1)
	require.ErrorIs(t, err, ErrRaggedBoard)
}

func TestGameCode(t *testing.T) {
	b, err := ParseGameCode("....;....;.x..;.oo.", Player1)
	require.NoError(t, err)
	require.Equal(t, "....;....;.x..;.oo.", b.Code())
	require.Equal(t, []string{"....", "....", ".x..", ".oo."}, b.Rows())

	_, err = ParseGameCode("....;....;.x..;.o'", Player1)
	require.ErrorIs(t, err, ErrInvalidGameCode)
}

func TestParsePlayer(t *testing.T) {
	p, err := ParsePlayer("O")
	require.NoError(t, err)
	require.Equal(t, Player1, p)

	p, err = ParsePlayer("x")
	require.NoError(t, err)
	require.Equal(t, Player2, p)

	_, err = ParsePlayer("z")
	require.ErrorIs(t, err, ErrInvalidPlayer)
	require.Equal(t, "o", Player1.String())
	require.Equal(t, "", Empty.String())
}
