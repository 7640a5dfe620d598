// Package notify holds transient success/error toasts. Each toast is an
// independent, self-expiring unit; expiring one never disturbs another.
package notify

import (
	"time"

	"github.com/google/uuid"
)

const (
	// SuccessTTL is how long success toasts stay visible.
	SuccessTTL = 3 * time.Second
	// ErrorTTL is how long error toasts stay visible. Errors linger
	// longer so the user can actually read them.
	ErrorTTL = 5 * time.Second
)

// Kind distinguishes success from error toasts.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Toast is one visible notification.
type Toast struct {
	ID        string
	Kind      Kind
	Message   string
	ExpiresAt time.Time
}

// Center collects active toasts. It does no timekeeping of its own; the
// owner calls Prune with the current time (the TUI drives this from its
// tick loop).
type Center struct {
	toasts []Toast
	now    func() time.Time
}

// NewCenter returns an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Success adds a success toast.
func (c *Center) Success(message string) Toast {
	return c.add(KindSuccess, message, SuccessTTL)
}

// Error adds an error toast.
func (c *Center) Error(message string) Toast {
	return c.add(KindError, message, ErrorTTL)
}

func (c *Center) add(kind Kind, message string, ttl time.Duration) Toast {
	t := Toast{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		ExpiresAt: c.now().Add(ttl),
	}
	c.toasts = append(c.toasts, t)
	return t
}

// Prune drops toasts that have expired as of now. Each toast expires on
// its own clock regardless of what else is on screen.
func (c *Center) Prune(now time.Time) {
	kept := c.toasts[:0]
	for _, t := range c.toasts {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	c.toasts = kept
}

// Active returns the currently visible toasts, oldest first.
func (c *Center) Active() []Toast {
	out := make([]Toast, len(c.toasts))
	copy(out, c.toasts)
	return out
}

// Len reports how many toasts are visible.
func (c *Center) Len() int { return len(c.toasts) }
