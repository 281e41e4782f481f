package repository

import (
	"context"
	"time"

	"eda-booking-service/internal/domain/entity"
)

// PresentationRepository defines the store contract for booking requests.
type PresentationRepository interface {
	Insert(ctx context.Context, p *entity.Presentation) error
	FindByID(ctx context.Context, id string) (*entity.Presentation, error)
	// FindAll returns every presentation, most recently created first.
	FindAll(ctx context.Context) ([]*entity.Presentation, error)
	// FindUpcoming returns approved presentations dated on or after from,
	// ordered by date ascending.
	FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Presentation, error)
	// UpdateStatus overwrites only the status field.
	UpdateStatus(ctx context.Context, id string, status entity.PresentationStatus) error
	// Update replaces city, date, time, description and status in one write.
	Update(ctx context.Context, id string, edit entity.PresentationEdit) error
	Delete(ctx context.Context, id string) error
	// Watch emits the full materialized admin listing on every change.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan []*entity.Presentation, error)
}
