package ports

import "context"

// NotificationObserver receives lifecycle event messages.
// Observers are advisory channels (email, SMS, audit logs); a failing
// observer is its own problem and must not affect order processing.
type NotificationObserver interface {
	// Update delivers a single event message to the observer.
	Update(ctx context.Context, message string)
}

// NotificationPublisher fans lifecycle event messages out to subscribed
// observers. Delivery is synchronous, fire-and-forget, in registration order.
type NotificationPublisher interface {
	// Publish delivers message to every current subscriber.
	Publish(ctx context.Context, message string)
}
