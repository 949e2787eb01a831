// Package notify shows short-lived user notices (toasts).
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Level selects the notice icon and how long it stays visible
type Level string

const (
	Success Level = "success"
	Error   Level = "error"
	Warning Level = "warning"
	Info    Level = "info"
)

var icons = map[Level]string{
	Success: "✔",
	Error:   "✖",
	Warning: "⚠",
	Info:    "ℹ",
}

// Normalize maps unknown levels to Info
func Normalize(level Level) Level {
	if _, ok := icons[level]; ok {
		return level
	}
	return Info
}

// Icon returns the glyph shown for level
func Icon(level Level) string {
	return icons[Normalize(level)]
}

// Delay is how long a notice of this level stays up before auto-hiding
func Delay(level Level) time.Duration {
	if Normalize(level) == Error {
		return 5 * time.Second
	}
	return 3 * time.Second
}

// Notice is one displayed message
type Notice struct {
	Message string
	Level   Level
	Delay   time.Duration
}

// Notifier displays notices
type Notifier interface {
	Show(message string, level Level)
}

// WriterNotifier prints notices as single lines
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Show(message string, level Level) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", Icon(level), message)
}

// LogNotifier records notices in the structured log
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Show(message string, level Level) {
	level = Normalize(level)
	fields := []zap.Field{zap.String("level", string(level)), zap.Duration("delay", Delay(level))}
	switch level {
	case Error:
		n.log.Error(message, fields...)
	case Warning:
		n.log.Warn(message, fields...)
	default:
		n.log.Info(message, fields...)
	}
}

// Recorder keeps every notice in memory
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Show(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level = Normalize(level)
	r.notices = append(r.notices, Notice{Message: message, Level: level, Delay: Delay(level)})
}

// Notices returns a copy of what has been shown so far
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Last returns the most recent notice
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Multi fans a notice out to several notifiers
type Multi []Notifier

func (m Multi) Show(message string, level Level) {
	for _, n := range m {
		n.Show(message, level)
	}
}
