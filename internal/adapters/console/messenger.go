// Package console delivers operator-facing messages on standard output.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Messenger implements ports.Messenger by printing each message as a line.
type Messenger struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a Messenger writing to stdout.
func New() *Messenger {
	return &Messenger{w: os.Stdout}
}

// SetOutput replaces the message destination.
func (m *Messenger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.w = w
}

// Say prints one operator-visible message.
func (m *Messenger) Say(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, _ = fmt.Fprintln(m.w, text)
}
