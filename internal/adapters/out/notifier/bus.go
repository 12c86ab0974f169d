// Package notifier implements the notification side of the order flow:
// a publisher that fans lifecycle event messages out to registered
// observers, and the built-in email and SMS observers.
package notifier

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/core/ports"
)

// Bus delivers lifecycle event messages to subscribed observers
// synchronously, in subscription order. A panicking observer is recovered
// and logged so one broken channel cannot break order processing or starve
// the observers after it.
type Bus struct {
	mu        sync.RWMutex
	observers []ports.NotificationObserver
	logger    *slog.Logger
}

// NewBus creates an empty notification bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger.With("component", "notification-bus"),
	}
}

// Subscribe registers an observer. Observers receive messages in the order
// they subscribed.
func (b *Bus) Subscribe(observer ports.NotificationObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, observer)
}

// Publish delivers message to every current subscriber.
func (b *Bus) Publish(ctx context.Context, message string) {
	b.mu.RLock()
	observers := make([]ports.NotificationObserver, len(b.observers))
	copy(observers, b.observers)
	b.mu.RUnlock()

	for _, observer := range observers {
		b.deliver(ctx, observer, message)
	}
}

func (b *Bus) deliver(ctx context.Context, observer ports.NotificationObserver, message string) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("observer panicked", "panic", r, "message", message)
		}
	}()

	observer.Update(ctx, message)
}
