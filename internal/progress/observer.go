package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

// ObserverFunc adapts a function that only wants Publish calls.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

// ShouldShow resolves the --progress / --no-progress pair; without either,
// progress is shown only when stdout and stderr are terminals.
func ShouldShow(force, no bool) bool {
	if no {
		return false
	}
	if force {
		return true
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}

type ttyObserver struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTTYObserver redraws a single status line.
func NewTTYObserver(w io.Writer) Observer {
	return &ttyObserver{w: w}
}

func (o *ttyObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.w, "\r\033[K%s", render(s))
}

func (o *ttyObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprint(o.w, "\r\033[K")
}

type logObserver struct {
	log zerolog.Logger
}

// NewLogObserver emits one structured event per report.
func NewLogObserver(log zerolog.Logger) Observer {
	return logObserver{log: log}
}

func (o logObserver) Publish(s Snapshot) {
	o.log.Info().
		Str("stage", string(s.Stage)).
		Int("total", s.Total).
		Int("done", s.Done).
		Int("highlights", s.Highlights).
		Float64("rate", s.Rate).
		Dur("eta", s.ETA).
		Bool("warmup", s.Warmup).
		Msg("progress")
}

func (o logObserver) Done(s Snapshot) {
	o.log.Info().
		Int("done", s.Done).
		Int("highlights", s.Highlights).
		Dur("elapsed", s.Elapsed).
		Msg("progress done")
}

// NewAutoObserver draws on w when it is a terminal and logs otherwise.
func NewAutoObserver(w io.Writer, log zerolog.Logger) Observer {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return NewTTYObserver(w)
	}
	return NewLogObserver(log)
}

func render(s Snapshot) string {
	if s.Total < 0 {
		return fmt.Sprintf("[%s] ...", s.Stage)
	}
	rate := "--/s"
	eta := "--:--:--"
	if !s.Warmup {
		rate = fmt.Sprintf("%.1f/s", s.Rate)
		if s.ETA > 0 {
			eta = formatETA(s.ETA.Seconds())
		}
	}
	return fmt.Sprintf("[%s] %3d%% %d/%d files, %d highlights %s ETA %s",
		s.Stage, percent(s.Done, s.Total), s.Done, s.Total, s.Highlights, rate, eta)
}

func formatETA(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 99 {
		h = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func percent(a, b int) int {
	if b <= 0 {
		if a <= 0 {
			return 0
		}
		return 100
	}
	p := a * 100 / b
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
