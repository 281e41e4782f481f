package repository

import (
	"context"

	"eda-booking-service/internal/domain/entity"
)

// EnlistmentRepository defines the store contract for enlistment applications.
type EnlistmentRepository interface {
	Insert(ctx context.Context, e *entity.Enlistment) error
	FindByID(ctx context.Context, id string) (*entity.Enlistment, error)
	// FindAll returns every application, most recently created first.
	FindAll(ctx context.Context) ([]*entity.Enlistment, error)
	// UpdateStatus overwrites only the status field.
	UpdateStatus(ctx context.Context, id string, status entity.EnlistmentStatus) error
	Delete(ctx context.Context, id string) error
	// Watch emits the full materialized admin listing on every change.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan []*entity.Enlistment, error)
}
