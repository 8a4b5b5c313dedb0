package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/cympfh/connect-four/internal/config"
	"github.com/cympfh/connect-four/internal/domain"
	"github.com/cympfh/connect-four/internal/service/solver"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, solver.CryptoSources()))
}

// run reads a board from stdin and prints the chosen position, or
// "No choice" when there is nothing to play. Bad input exits with 2.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, sources solver.SourceFactory) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var next string
	var verbose bool
	fs.StringVar(&next, "next", "", "side to move: o or x")
	fs.StringVar(&next, "n", "", "shorthand for --next")
	fs.BoolVar(&verbose, "verbose", false, "print every evaluated board")
	fs.BoolVar(&verbose, "v", false, "shorthand for --verbose")
	trials := fs.Int("trials", config.GetEnvAsInt("SOLVER_TRIALS", solver.DefaultTrials), "playouts per reply board")
	workers := fs.Int("workers", config.GetEnvAsInt("SOLVER_WORKERS", runtime.NumCPU()), "parallel playout workers")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	mover, err := domain.ParsePlayer(next)
	if err != nil {
		log.Error().Str("next", next).Err(err).Msg("--next must be o or x")
		return 2
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		log.Error().Err(err).Msg("failed to read board")
		return 2
	}
	board, err := domain.ParseBoard(string(input), mover)
	if err != nil {
		log.Error().Err(err).Msg("invalid board")
		return 2
	}

	opts := solver.Options{Trials: *trials, Workers: *workers, Sources: sources}
	if verbose {
		opts.Diagnostics = solver.WriterDiagnostics{W: stdout}
	}

	result, err := solver.New(opts).Solve(ctx, board)
	switch {
	case errors.Is(err, domain.ErrNoLegalMove), errors.Is(err, domain.ErrGameAlreadyDecided):
		fmt.Fprintln(stdout, "No choice")
		return 0
	case err != nil:
		log.Error().Err(err).Msg("search failed")
		return 1
	}

	fmt.Fprint(stdout, result.String())
	return 0
}
