package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cympfh/connect-four/internal/service/solver"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, solver.SeededSources(42))
	return code, out.String()
}

func TestCLITakesWinningMove(t *testing.T) {
	board := ".......\n.......\n.......\n..o....\n..o.x..\n..o.x..\n"

	code, out := runCLI(t, board, "--next", "o", "--trials", "10")
	require.Equal(t, 0, code)
	require.Equal(t, ".......\n.......\n..o....\n..o....\n..o.x..\n..o.x..\n", out)
}

func TestCLIVerbose(t *testing.T) {
	board := "....\n....\n....\n....\n"

	code, out := runCLI(t, board, "-n", "x", "-v", "--trials", "100", "--workers", "2")
	require.Equal(t, 0, code)
	require.Equal(t, 16, strings.Count(out, "---\n"))
	require.Contains(t, out, "Prob to win: ")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := strings.Join(lines[len(lines)-4:], "\n")
	require.Equal(t, 1, strings.Count(last, "x"))
}

func TestCLINoChoice(t *testing.T) {
	code, out := runCLI(t, "oxox\noxox\nxoxo\nxoxo\n", "--next", "o")
	require.Equal(t, 0, code)
	require.Equal(t, "No choice\n", out)

	code, out = runCLI(t, "....\n....\nx...\noooo\n", "--next", "x")
	require.Equal(t, 0, code)
	require.Equal(t, "No choice\n", out)
}

func TestCLIRejectsBadInput(t *testing.T) {
	code, _ := runCLI(t, "....\n....\n....\n....\n")
	require.Equal(t, 2, code)

	code, _ = runCLI(t, "....\n....\n....\n....\n", "--next", "z")
	require.Equal(t, 2, code)

	code, _ = runCLI(t, "...\n...\n...\n", "--next", "o")
	require.Equal(t, 2, code)

	code, _ = runCLI(t, "", "--bogus")
	require.Equal(t, 2, code)
}
