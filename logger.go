// logger.go - debug.txt/trace.txt diagnostic sinks, truncated at startup

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"sync"
)

// Logger routes debug-mode and trace-mode diagnostics to their own files,
// truncating each at startup. Writes are silently dropped when the
// corresponding mode is disabled, matching the never-raise error policy:
// a logging failure must never interrupt emulation.
type Logger struct {
	mu        sync.Mutex
	debugFile *os.File
	traceFile *os.File
}

// NewLogger opens debug.txt and/or trace.txt (truncated) according to which
// modes are enabled.
func NewLogger(debug, trace bool) *Logger {
	l := &Logger{}
	if debug {
		if f, err := os.Create("debug.txt"); err == nil {
			l.debugFile = f
		} else {
			fmt.Fprintf(os.Stderr, "zisax: warning: could not open debug.txt: %v\n", err)
		}
	}
	if trace {
		if f, err := os.Create("trace.txt"); err == nil {
			l.traceFile = f
		} else {
			fmt.Fprintf(os.Stderr, "zisax: warning: could not open trace.txt: %v\n", err)
		}
	}
	return l
}

// Debugf appends a formatted line to debug.txt, a no-op when debug mode is off.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.debugFile == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.debugFile, format+"\n", args...)
}

// Tracef appends a formatted line to trace.txt, a no-op when trace mode is off.
func (l *Logger) Tracef(format string, args ...any) {
	if l == nil || l.traceFile == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.traceFile, format+"\n", args...)
}

// Close flushes and closes whichever log files were opened.
func (l *Logger) Close() {
	if l.debugFile != nil {
		l.debugFile.Close()
	}
	if l.traceFile != nil {
		l.traceFile.Close()
	}
}
