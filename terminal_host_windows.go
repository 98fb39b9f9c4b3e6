//go:build windows

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin and queues bytes for the Keyboard device to
// drain one at a time. Only instantiated in main.go for interactive use —
// never in tests.
type TerminalHost struct {
	keyboard *Keyboard

	mu      sync.Mutex
	pending []byte

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter that feeds raw stdin bytes toward
// the given keyboard device via PollKey.
func NewTerminalHost(keyboard *Keyboard) *TerminalHost {
	return &TerminalHost{
		keyboard: keyboard,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start sets stdin to raw mode and begins reading in a goroutine.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("set raw mode: %w", err)
	}
	h.oldTermState = oldState

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				h.mu.Lock()
				h.pending = append(h.pending, buf[0])
				h.mu.Unlock()
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

// PollKey returns one queued keystroke, if any, without blocking.
func (h *TerminalHost) PollKey() (byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) == 0 {
		return 0, false
	}
	b := h.pending[0]
	h.pending = h.pending[1:]
	return b, true
}

// Stop terminates the stdin reading goroutine and restores terminal state.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
