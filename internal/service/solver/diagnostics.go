package solver

import (
	"fmt"
	"io"

	"github.com/cympfh/connect-four/internal/domain"
	"github.com/rs/zerolog"
)

const (
	LabelWinSoon   = "You can win soon!"
	LabelProbToWin = "Prob to win"
)

// Probe is one board the search looked at in verbose mode.
type Probe struct {
	Board       *domain.Board
	Label       string
	Probability float64
	Candidate   int // own move
	Reply       int // opponent reply, -1 for an immediate win
}

// Diagnostics receives probes while a search runs. It never influences the
// chosen move.
type Diagnostics interface {
	Report(p Probe)
}

// DiagnosticsFunc adapts a plain function to Diagnostics.
type DiagnosticsFunc func(p Probe)

func (f DiagnosticsFunc) Report(p Probe) { f(p) }

// WriterDiagnostics prints probes in the CLI's verbose format.
type WriterDiagnostics struct {
	W io.Writer
}

func (d WriterDiagnostics) Report(p Probe) {
	fmt.Fprintln(d.W, "---")
	fmt.Fprint(d.W, p.Board.String())
	if p.Reply < 0 {
		fmt.Fprintln(d.W, p.Label)
	} else {
		fmt.Fprintf(d.W, "%s: %.3f\n", p.Label, p.Probability)
	}
	fmt.Fprintln(d.W)
}

type LogDiagnostics struct {
	Logger zerolog.Logger
}

func (d LogDiagnostics) Report(p Probe) {
	d.Logger.Debug().
		Str("board", p.Board.Code()).
		Int("candidate", p.Candidate).
		Int("reply", p.Reply).
		Float64("probability", p.Probability).
		Msg(p.Label)
}
