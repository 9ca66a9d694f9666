package tracelog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a single publish-cycle record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Outcome   string    `json:"outcome"`
	Centi     int16     `json:"centi"`
	LatencyMS int64     `json:"latencyMs"`
}

// Logger writes entries to a rotating file. Safe for concurrent use,
// though the beacon only ever writes from its single cycle goroutine.
type Logger struct {
	mu  sync.Mutex
	out *lumberjack.Logger
}

// Options bound the rotated file set.
type Options struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger creates a trace logger writing to opts.Path.
func NewLogger(opts Options) *Logger {
	return &Logger{
		out: &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		},
	}
}

// Cycle records one publish cycle. Implements beacon.Tracer.
func (l *Logger) Cycle(outcome string, centi int16, latency time.Duration) {
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Outcome:   outcome,
		Centi:     centi,
		LatencyMS: latency.Milliseconds(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracelog: marshal entry: %v\n", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.out.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "tracelog: write entry: %v\n", err)
	}
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}
