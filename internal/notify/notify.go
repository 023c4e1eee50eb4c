// Package notify is the server side of the toast notification service.
// Components publish toasts; the SPA receives them as server-sent events.
package notify

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrClosed          = errors.New("notification hub closed")
	ErrInvalidSeverity = errors.New("invalid toast severity")
)

// Severity matches the toast component's severities
type Severity string

const (
	SeveritySuccess   Severity = "success"
	SeverityInfo      Severity = "info"
	SeverityWarn      Severity = "warn"
	SeverityError     Severity = "error"
	SeveritySecondary Severity = "secondary"
	SeverityContrast  Severity = "contrast"
)

// DefaultLife is how long a toast stays on screen when Life is unset
const DefaultLife = 3 * time.Second

const subscriberBuffer = 16

// Toast is one notification
type Toast struct {
	Severity Severity      `json:"severity"`
	Summary  string        `json:"summary"`
	Detail   string        `json:"detail,omitempty"`
	Life     time.Duration `json:"-"`
}

// LifeMillis is the display time in the unit the toast component expects
func (t Toast) LifeMillis() int64 {
	return t.Life.Milliseconds()
}

func (t Toast) validate() error {
	switch t.Severity {
	case SeveritySuccess, SeverityInfo, SeverityWarn, SeverityError, SeveritySecondary, SeverityContrast:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSeverity, t.Severity)
	}
	if t.Summary == "" {
		return errors.New("toast summary is required")
	}
	return nil
}

// Hub fans toasts out to subscribers
type Hub struct {
	mu      sync.Mutex
	subs    map[int]chan Toast
	nextID  int
	closed  bool
	dropped atomic.Int64
	logger  zerolog.Logger
}

// NewHub creates an empty hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]chan Toast),
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

// Subscribe registers a listener. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Toast, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Toast, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

// Publish delivers a toast to every subscriber without blocking.
// Subscribers whose buffer is full miss the toast.
func (h *Hub) Publish(t Toast) error {
	if err := t.validate(); err != nil {
		return err
	}
	if t.Life <= 0 {
		t.Life = DefaultLife
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	for _, ch := range h.subs {
		select {
		case ch <- t:
		default:
			h.dropped.Add(1)
		}
	}

	h.logger.Debug().
		Str("severity", string(t.Severity)).
		Str("summary", t.Summary).
		Int("subscribers", len(h.subs)).
		Msg("toast published")
	return nil
}

// Subscribers returns the number of active listeners
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped for slow subscribers
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Close disconnects all subscribers; later publishes return ErrClosed
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
