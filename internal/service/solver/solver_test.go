package solver

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cympfh/connect-four/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestSolver(seed uint64, diag Diagnostics) *Solver {
	return New(Options{Trials: 200, Workers: 2, Sources: SeededSources(seed), Diagnostics: diag})
}

func TestSolveEmptyBoard(t *testing.T) {
	b, err := domain.NewBoard(4, 4, domain.Player1)
	require.NoError(t, err)

	got, err := newTestSolver(1, nil).Solve(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 1, got.PieceCount())
	require.Equal(t, domain.Empty, domain.Judge(got))
	require.Equal(t, domain.Player2, got.Next)

	col := b.DiffColumn(got)
	require.Contains(t, []int{0, 1, 2, 3}, col)
	require.Equal(t, domain.Player1, got.Cells[3][col])
	require.Equal(t, 0, b.PieceCount())
}

func TestSolveTakesImmediateWin(t *testing.T) {
	b := mustRows(t, domain.Player1,
		".......",
		".......",
		".......",
		"..o....",
		"x.o....",
		"xxo....",
	)

	a, err := newTestSolver(1, nil).Analyze(context.Background(), b)
	require.NoError(t, err)
	require.True(t, a.ImmediateWin)
	require.Equal(t, 2, a.Column)
	require.Equal(t, domain.Player1, a.Result.Cells[2][2])
	require.Equal(t, domain.Player1, domain.Judge(a.Result))
}

func TestSolveAlreadyDecided(t *testing.T) {
	b := mustRows(t, domain.Player2,
		"....",
		"....",
		"x...",
		"oooo",
	)
	_, err := newTestSolver(1, nil).Solve(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrGameAlreadyDecided)
}

func TestSolveFullBoard(t *testing.T) {
	b := mustRows(t, domain.Player1, "oxox", "oxox", "xoxo", "xoxo")
	_, err := newTestSolver(1, nil).Solve(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrNoLegalMove)
}

func TestSolveBlocksOpponentThreat(t *testing.T) {
	b := mustRows(t, domain.Player1,
		".......",
		".......",
		".......",
		"x......",
		"x.....o",
		"x....oo",
	)

	a, err := newTestSolver(5, nil).Analyze(context.Background(), b)
	require.NoError(t, err)
	require.False(t, a.ImmediateWin)
	require.Equal(t, 0, a.Column)

	for _, reply := range a.Result.LegalMoves() {
		h, err := a.Result.Play(reply)
		require.NoError(t, err)
		require.NotEqual(t, domain.Player2, domain.Judge(h))
	}

	// every other move hands x the column
	for _, c := range a.Candidates[1:] {
		require.Equal(t, 0.0, c.WorstCase)
	}
	require.Greater(t, a.Candidates[0].WorstCase, 0.0)
}

func TestSolveTieKeepsLowestColumn(t *testing.T) {
	// every line of play ends with o filling the last cell and winning
	b := mustRows(t, domain.Player1,
		"xo..o",
		"ox.xo",
		"xooxo",
		"oxoox",
	)

	a, err := newTestSolver(1, nil).Analyze(context.Background(), b)
	require.NoError(t, err)
	require.False(t, a.ImmediateWin)
	require.Len(t, a.Candidates, 2)
	require.Equal(t, 1.0, a.Candidates[0].WorstCase)
	require.Equal(t, 1.0, a.Candidates[1].WorstCase)
	require.Equal(t, 2, a.Column)
}

func TestSolveHopelessPositionHasNoChoice(t *testing.T) {
	// x threatens both ends of the bottom row
	b := mustRows(t, domain.Player1,
		".......",
		".......",
		".......",
		".......",
		".ooo...",
		".xxx...",
	)

	var probes []Probe
	s := newTestSolver(1, DiagnosticsFunc(func(p Probe) { probes = append(probes, p) }))
	_, err := s.Analyze(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrNoLegalMove)
	require.Len(t, probes, 49)
}

func TestSolveDrawnEndingsHaveNoChoice(t *testing.T) {
	// both moves lead to a full board without a winner
	b := mustRows(t, domain.Player1,
		"o.o.",
		"oxox",
		"xoxo",
		"xoxo",
	)

	_, err := newTestSolver(1, nil).Solve(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrNoLegalMove)
}

func TestSolveLastCellWithoutReply(t *testing.T) {
	b := mustRows(t, domain.Player1,
		"oxo.",
		"oxox",
		"xoxo",
		"xoxo",
	)

	a, err := newTestSolver(1, nil).Analyze(context.Background(), b)
	require.NoError(t, err)
	require.Equal(t, 3, a.Column)
	require.Equal(t, 1.0, a.Candidates[0].WorstCase)
	require.True(t, a.Result.IsFull())
}

func TestDiagnosticsDoNotChangeTheResult(t *testing.T) {
	b := mustRows(t, domain.Player2,
		".....",
		".....",
		"..o..",
		".xo..",
		".ox.x",
	)

	var probes []Probe
	withDiag, err := newTestSolver(3, DiagnosticsFunc(func(p Probe) { probes = append(probes, p) })).Analyze(context.Background(), b)
	require.NoError(t, err)
	quiet, err := newTestSolver(3, nil).Analyze(context.Background(), b)
	require.NoError(t, err)

	require.Equal(t, quiet.Column, withDiag.Column)
	require.Equal(t, quiet.Candidates, withDiag.Candidates)

	replies := 0
	for _, c := range withDiag.Candidates {
		replies += len(c.Replies)
	}
	require.Len(t, probes, replies)
	for _, p := range probes {
		require.Equal(t, LabelProbToWin, p.Label)
		require.Equal(t, b.PieceCount()+2, p.Board.PieceCount())
	}
}

func TestWriterDiagnosticsFormat(t *testing.T) {
	b := mustRows(t, domain.Player1,
		"....",
		"....",
		"o...",
		"ox..",
	)
	var buf bytes.Buffer
	d := WriterDiagnostics{W: &buf}

	d.Report(Probe{Board: b, Label: LabelProbToWin, Probability: 0.25, Candidate: 0, Reply: 1})
	d.Report(Probe{Board: b, Label: LabelWinSoon, Probability: 1, Candidate: 0, Reply: -1})

	want := strings.Join([]string{
		"---", "....", "....", "o...", "ox..", "Prob to win: 0.250", "",
		"---", "....", "....", "o...", "ox..", "You can win soon!", "",
	}, "\n") + "\n"
	require.Equal(t, want, buf.String())
}
