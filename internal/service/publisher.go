package queue_publisher

import (
    "context"

    q "github.com/tachbel/hostel-management/internal/queue"
)

// Publisher adapts the package-level publish functions to the handler
// layer's EventPublisher interface.
type Publisher struct{}

// PublishBookingConfirmed implements handler.EventPublisher.
func (Publisher) PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    return PublishBookingConfirmed(ctx, event)
}

// PublishBookingCancelled implements handler.EventPublisher.
func (Publisher) PublishBookingCancelled(ctx context.Context, event q.BookingCancelledEvent) error {
    return PublishBookingCancelled(ctx, event)
}
