package repository

import (
	"context"
	"errors"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEnlistmentRepository implements EnlistmentRepository
type MongoEnlistmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEnlistmentRepository creates a new enlistment repository
func NewMongoEnlistmentRepository(db *mongo.Database) repository.EnlistmentRepository {
	collection := db.Collection("alistamentos")

	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdAtIndex,
		statusIndex,
	})

	return &MongoEnlistmentRepository{
		collection: collection,
	}
}

// Insert stores a new enlistment application
func (r *MongoEnlistmentRepository) Insert(ctx context.Context, e *entity.Enlistment) error {
	if e.ID == "" {
		e.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		return &entity.StoreWriteError{Op: "insert enlistment", Err: err}
	}
	return nil
}

// FindByID finds an enlistment by id
func (r *MongoEnlistmentRepository) FindByID(ctx context.Context, id string) (*entity.Enlistment, error) {
	var e entity.Enlistment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindAll returns every application, most recently created first
func (r *MongoEnlistmentRepository) FindAll(ctx context.Context) ([]*entity.Enlistment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	enlistments := []*entity.Enlistment{}
	if err := cursor.All(ctx, &enlistments); err != nil {
		return nil, err
	}
	return enlistments, nil
}

// UpdateStatus overwrites only the status field
func (r *MongoEnlistmentRepository) UpdateStatus(ctx context.Context, id string, status entity.EnlistmentStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return &entity.StoreWriteError{Op: "update enlistment status", Err: err}
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes an enlistment permanently
func (r *MongoEnlistmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &entity.StoreWriteError{Op: "delete enlistment", Err: err}
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Watch streams the full admin listing on every collection change
func (r *MongoEnlistmentRepository) Watch(ctx context.Context) (<-chan []*entity.Enlistment, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	initial, err := r.FindAll(ctx)
	if err != nil {
		stream.Close(ctx)
		return nil, err
	}

	out := make(chan []*entity.Enlistment, 1)
	out <- initial

	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			snapshot, err := r.FindAll(ctx)
			if err != nil {
				continue
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
