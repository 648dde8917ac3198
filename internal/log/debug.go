// Package log provides the xtree debug log.
//
// Messages written before a destination is chosen are buffered. SetFile
// flushes the buffer into the file, or drops it when no file is configured,
// so early start-up messages are not lost once --debug-log is parsed.
package log

import (
	"log"
	"os"
	"sync"
)

// DebugLogger is the io.Writer behind every component logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}
	if l.file != nil {
		n, err := l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	l.buffer = append(l.buffer, p...)
	return len(p), nil
}

// SetFile directs the debug log to path. An empty path discards buffered
// and future messages.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false
	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}
	return nil
}

// Reset closes any open file and buffers messages again until the next
// SetFile.
func Reset() {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}
	globalDebugLogger.discard = false
	globalDebugLogger.buffer = nil
}

// Close closes the debug log file if one is open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}
	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	return err
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Component returns a printf-style function that prefixes every message
// with name, e.g. "toolbar: transition 3 done".
func Component(name string) func(string, ...any) {
	prefix := name + ": "
	return func(format string, args ...any) {
		stdLogger.Printf(prefix+format, args...)
	}
}
