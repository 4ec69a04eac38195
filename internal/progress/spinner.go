package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerDelay = 100 * time.Millisecond

// Spinner animates a status line on a terminal and degrades to plain result
// lines elsewhere.
type Spinner struct {
	w       io.Writer
	symbols ProgressSymbols
	sp      *spinner.Spinner // nil when the writer is not a terminal
}

// NewSpinner returns a spinner writing to w. The animation is only enabled
// when caps reports a TTY.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	s := &Spinner{w: w, symbols: SelectSymbols(caps)}
	if caps.IsTTY {
		s.sp = spinner.New(spinner.CharSets[s.symbols.SpinnerSet], spinnerDelay, spinner.WithWriter(w))
	}
	return s
}

// Start shows msg next to the animation.
func (s *Spinner) Start(msg string) {
	if s.sp == nil {
		return
	}
	s.sp.Suffix = " " + msg
	s.sp.Start()
}

// Success stops the animation and prints msg with a checkmark.
func (s *Spinner) Success(msg string) {
	s.finish(s.symbols.Checkmark, msg)
}

// Fail stops the animation and prints msg with a failure marker.
func (s *Spinner) Fail(msg string) {
	s.finish(s.symbols.Failure, msg)
}

// Stop stops the animation without printing anything.
func (s *Spinner) Stop() {
	if s.sp != nil {
		s.sp.Stop()
	}
}

func (s *Spinner) finish(symbol, msg string) {
	s.Stop()
	fmt.Fprintf(s.w, "%s %s\n", symbol, msg)
}
