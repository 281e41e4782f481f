package repository

import (
	"context"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShowcaseRepository reads the public-page collections
type MongoShowcaseRepository struct {
	carousel *mongo.Collection
	pilots   *mongo.Collection
}

// NewMongoShowcaseRepository creates a new showcase repository
func NewMongoShowcaseRepository(db *mongo.Database) repository.ShowcaseRepository {
	return &MongoShowcaseRepository{
		carousel: db.Collection("carousel"),
		pilots:   db.Collection("pilots"),
	}
}

// CarouselImages returns the hero images in display order
func (r *MongoShowcaseRepository) CarouselImages(ctx context.Context) ([]*entity.CarouselImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.carousel.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := []*entity.CarouselImage{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Pilots returns the roster in display order
func (r *MongoShowcaseRepository) Pilots(ctx context.Context) ([]*entity.Pilot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.pilots.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pilots := []*entity.Pilot{}
	if err := cursor.All(ctx, &pilots); err != nil {
		return nil, err
	}
	return pilots, nil
}
