package repository

import (
	"context"

	"eda-booking-service/internal/domain/entity"
)

// Notifier posts workflow event messages to the chat webhook. Send is
// fire-and-forget: transport errors are handled inside the implementation
// and collapsed into the returned boolean, never surfaced as an error.
type Notifier interface {
	Send(ctx context.Context, n *entity.Notification) bool
}
