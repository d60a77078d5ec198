// Package notify is the user-visible notification sink for transient failures and confirmations.
//
// The studio web app surfaces these as dismissible top-right toasts; the CLI
// logs them, and the TUI renders them from a [Recorder]. Auth failures (401/403)
// never arrive here: the auth transport handles those exclusively.
package notify

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Level classifies a notification for styling and display duration.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return ""
	}
}

// Display durations per severity.
const (
	DefaultDuration = 6 * time.Second
	ErrorDuration   = 15 * time.Second
)

// Notification is a single user-visible message.
type Notification struct {
	Level    Level
	Message  string
	Duration time.Duration
}

// New builds a Notification with the severity-appropriate display duration.
func New(level Level, message string) Notification {
	d := DefaultDuration
	if level == LevelError {
		d = ErrorDuration
	}
	return Notification{Level: level, Message: message, Duration: d}
}

// Notifier receives user-visible notifications.
type Notifier interface {
	Push(n Notification)
}

// Log is a Notifier that writes notifications to a [log.Logger].
type Log struct {
	logger *log.Logger
}

// NewLog creates a logging Notifier.
func NewLog(logger *log.Logger) *Log {
	return &Log{logger: logger}
}

// Push writes the notification at the matching log level.
func (l *Log) Push(n Notification) {
	switch n.Level {
	case LevelError:
		l.logger.Error(n.Message)
	default:
		l.logger.Info(n.Message)
	}
}

// Recorder is a Notifier that buffers notifications for tests and the TUI.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Push appends the notification to the buffer.
func (r *Recorder) Push(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Items returns a copy of the buffered notifications.
func (r *Recorder) Items() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Reset discards the buffer.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
