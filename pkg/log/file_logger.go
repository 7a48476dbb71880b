package log

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileExtension is the conventional suffix of capture files.
const FileExtension = ".glog"

// FileLogger writes capture events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type FileLogger struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	written int
}

// NewFileLogger creates a new FileLogger that writes to the specified path.
// If the file exists, new events are appended. A path without an extension
// gets FileExtension appended.
func NewFileLogger(path string) (*FileLogger, error) {
	if filepath.Ext(path) == "" {
		path += FileExtension
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Log writes an event to the capture file.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	// Encoding failures never reach the bridge
	if err := l.encoder.Encode(event); err == nil {
		l.written++
	}
}

// Path returns the file the logger writes to.
func (l *FileLogger) Path() string {
	return l.file.Name()
}

// Written returns the number of events successfully encoded.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Close closes the capture file.
// It is safe to call Close multiple times.
// After Close is called, subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
