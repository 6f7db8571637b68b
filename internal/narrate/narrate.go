// Package narrate routes per-file narration and warnings according to
// the active display mode. The file processor only ever sees the Sink
// interface and stays unaware of which implementation is active.
package narrate

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Sink receives messages produced while processing files. Multiple
// workers report concurrently, so every implementation must serialize
// its own output.
type Sink interface {
	// Stepf emits one line of step-by-step narration for a file.
	Stepf(format string, args ...any)
	// Warnf emits a warning that stays visible in every display mode.
	Warnf(format string, args ...any)
	// Noticef emits a skip or error notice that stays visible in every
	// display mode.
	Noticef(format string, args ...any)
	// FileDone marks one input file as fully processed.
	FileDone()
	// Close flushes any display state once the run is over.
	Close()
}

// Verbose narrates every step. Narration and warnings go to out,
// notices to errOut.
type Verbose struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func NewVerbose(out, errOut io.Writer) *Verbose {
	return &Verbose{out: out, errOut: errOut}
}

func (v *Verbose) Stepf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format+"\n", args...)
}

func (v *Verbose) Warnf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "  [WARN] "+format+"\n", args...)
}

func (v *Verbose) Noticef(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.errOut, format+"\n", args...)
}

func (v *Verbose) FileDone() {}

func (v *Verbose) Close() {}

// Progress suppresses narration in favor of a progress bar. Warnings
// and notices print above the bar so they survive the redraw.
type Progress struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func NewProgress(total int, out io.Writer) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
	)
	return &Progress{bar: bar}
}

func (p *Progress) Stepf(string, ...any) {}

func (p *Progress) Warnf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = progressbar.Bprintln(p.bar, fmt.Sprintf("[WARN] "+format, args...))
}

func (p *Progress) Noticef(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = progressbar.Bprintln(p.bar, fmt.Sprintf(format, args...))
}

func (p *Progress) FileDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Add(1)
}

func (p *Progress) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Finish()
}
