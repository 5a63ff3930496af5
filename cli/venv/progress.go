package venv

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ch-iv/litestar-manage/cli/util"
)

const (
	// StreamMain is a stream name of the builder's own progress messages.
	StreamMain = "main"
	// StreamStdout is a stream name of the subprocess stdout.
	StreamStdout = "stdout"
	// StreamStderr is a stream name of the subprocess stderr.
	StreamStderr = "stderr"
)

// ProgressFunc receives subprocess output lines and builder messages.
// stream is one of StreamMain, StreamStdout or StreamStderr.
// Stdout and stderr lines arrive from separate goroutines, so implementations
// must be safe for concurrent use.
type ProgressFunc func(line, stream string)

// NewDefaultProgress returns the indicator used when no ProgressFunc is set.
// Output lines are printed as is in verbose mode. Otherwise a spinner is shown
// if out is a terminal, or a dot is printed per line.
func NewDefaultProgress(out *os.File, verbose bool) ProgressFunc {
	if !verbose && util.IsTerminal(out) {
		return newSpinnerProgress(out)
	}
	return newDotsProgress(out, verbose)
}

func newDotsProgress(out io.Writer, verbose bool) ProgressFunc {
	var mtx sync.Mutex
	return func(line, stream string) {
		mtx.Lock()
		defer mtx.Unlock()
		if stream == StreamMain || verbose {
			fmt.Fprint(out, line)
			return
		}
		fmt.Fprint(out, ".")
	}
}

type spinnerProgress struct {
	mtx     sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	message string
}

func newSpinnerProgress(out io.Writer) ProgressFunc {
	progress := &spinnerProgress{
		out:     out,
		spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(out)),
	}
	return progress.handle
}

func (p *spinnerProgress) handle(line, stream string) {
	if stream != StreamMain {
		return
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()
	text := strings.TrimSpace(line)
	if !p.spinner.Active() {
		p.message = text
		p.spinner.Suffix = " " + text
		p.spinner.Start()
		return
	}
	p.spinner.Stop()
	fmt.Fprintf(p.out, "%s %s\n", p.message, text)
}
