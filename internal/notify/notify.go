package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level of a toast
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// String returns the level name
func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// DefaultDuration is how long a toast stays visible
const DefaultDuration = 4 * time.Second

// Toast is a transient user-visible notification
type Toast struct {
	ID        int
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Notifier receives success and failure notifications from services
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Queue collects toasts for the TUI and drops them once they expire.
// Services may push from any goroutine.
type Queue struct {
	mu       sync.Mutex
	duration time.Duration
	now      func() time.Time
	nextID   int
	toasts   []Toast
}

// NewQueue creates a queue whose toasts live for duration
func NewQueue(duration time.Duration) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Queue{duration: duration, now: time.Now}
}

// Success implements Notifier
func (q *Queue) Success(message string) {
	q.Push(LevelSuccess, message)
}

// Error implements Notifier
func (q *Queue) Error(message string) {
	q.Push(LevelError, message)
}

// Push adds a toast and returns it
func (q *Queue) Push(level Level, message string) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	now := q.now()
	t := Toast{
		ID:        q.nextID,
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(q.duration),
	}
	q.toasts = append(q.toasts, t)
	return t
}

// Active returns the toasts that have not expired, oldest first
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked()
	return append([]Toast(nil), q.toasts...)
}

// Prune drops expired toasts and reports whether any remain
func (q *Queue) Prune() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked()
	return len(q.toasts) > 0
}

// Last returns the most recent active toast
func (q *Queue) Last() (Toast, bool) {
	active := q.Active()
	if len(active) == 0 {
		return Toast{}, false
	}
	return active[len(active)-1], true
}

// Messages returns the text of every active toast, oldest first
func (q *Queue) Messages() []string {
	active := q.Active()
	out := make([]string, len(active))
	for i, t := range active {
		out[i] = t.Message
	}
	return out
}

func (q *Queue) pruneLocked() {
	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// Printer writes toasts straight to a terminal, for one-shot CLI commands
type Printer struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewPrinter prints successes to out and errors to errOut
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Success implements Notifier
func (p *Printer) Success(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, successStyle.Render("✓")+" "+message)
}

// Error implements Notifier
func (p *Printer) Error(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.err, errorStyle.Render("✗")+" "+message)
}
