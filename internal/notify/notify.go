// Package notify delivers short user-facing messages.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier shows a message to the user.
type Notifier interface {
	Error(msg string)
	Success(msg string)
	Loading(msg string)
}

// Writer prints notifications to CLI streams.
// Errors go to errOut prefixed with "error: ", the rest go to out unless quiet.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

// NewWriter creates a Writer notifier.
func NewWriter(out, errOut io.Writer, quiet bool) *Writer {
	return &Writer{out: out, errOut: errOut, quiet: quiet}
}

func (w *Writer) Error(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.errOut, "error: %s\n", msg)
}

func (w *Writer) Success(msg string) {
	if w.quiet {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, msg)
}

func (w *Writer) Loading(msg string) {
	if w.quiet {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.errOut, msg)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Error(string)   {}
func (discard) Success(string) {}
func (discard) Loading(string) {}
