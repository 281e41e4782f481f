package repository

import (
	"context"

	"eda-booking-service/internal/domain/entity"
)

// ShowcaseRepository reads the public-page collections. There is no write
// path for these in this service.
type ShowcaseRepository interface {
	// CarouselImages returns the hero images ordered by their display order.
	CarouselImages(ctx context.Context) ([]*entity.CarouselImage, error)
	// Pilots returns the roster ordered by its display order.
	Pilots(ctx context.Context) ([]*entity.Pilot, error)
}
