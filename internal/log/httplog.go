package log

import (
	"sync"
	"time"
)

// httpLogBuffer is a fixed-size ring of recent HTTP request/response
// entries, kept separately from the main structured log so an operator
// can inspect recent API traffic without grepping log files.
var (
	httpLogBuffer     *LogBuffer
	httpLogBufferOnce sync.Once
)

// HTTPLogEntry describes one completed HTTP request against the
// dive-server REST API.
type HTTPLogEntry struct {
	Timestamp  time.Time     `json:"timestamp"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Status     int           `json:"status"`
	Duration   time.Duration `json:"duration"`
	RemoteAddr string        `json:"remoteAddr"`
	Error      string        `json:"error,omitempty"`
}

// LogBuffer is a concurrency-safe fixed-capacity ring buffer of the most
// recent HTTP log entries.
type LogBuffer struct {
	mu       sync.Mutex
	entries  []HTTPLogEntry
	capacity int
	next     int
	filled   bool
}

// NewLogBuffer creates a ring buffer holding up to capacity entries.
func NewLogBuffer(capacity int) *LogBuffer {
	return &LogBuffer{entries: make([]HTTPLogEntry, capacity), capacity: capacity}
}

// Add appends an entry, overwriting the oldest one once the buffer fills.
func (b *LogBuffer) Add(entry HTTPLogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[b.next] = entry
	b.next = (b.next + 1) % b.capacity
	if b.next == 0 {
		b.filled = true
	}
}

// Recent returns the buffered entries in chronological order, oldest first.
func (b *LogBuffer) Recent() []HTTPLogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.filled {
		out := make([]HTTPLogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}
	out := make([]HTTPLogEntry, b.capacity)
	copy(out, b.entries[b.next:])
	copy(out[b.capacity-b.next:], b.entries[:b.next])
	return out
}

// GetHTTPLogBuffer returns the process-wide HTTP log buffer, creating it
// with a 1000-entry capacity on first use.
func GetHTTPLogBuffer() *LogBuffer {
	httpLogBufferOnce.Do(func() {
		httpLogBuffer = NewLogBuffer(1000)
	})
	return httpLogBuffer
}

// LogHTTPRequest records a completed request in the HTTP log buffer and
// emits a structured line to the main logger.
func LogHTTPRequest(method, path string, status int, duration time.Duration, remoteAddr string, err error) {
	entry := HTTPLogEntry{
		Timestamp:  time.Now(),
		Method:     method,
		Path:       path,
		Status:     status,
		Duration:   duration,
		RemoteAddr: remoteAddr,
	}
	if err != nil {
		entry.Error = err.Error()
		Errorw("httpapi request failed",
			"method", method, "path", path, "status", status,
			"durationMs", duration.Milliseconds(), "remoteAddr", remoteAddr, "error", err)
	} else {
		Infow("httpapi request",
			"method", method, "path", path, "status", status,
			"durationMs", duration.Milliseconds(), "remoteAddr", remoteAddr)
	}
	GetHTTPLogBuffer().Add(entry)
}
