package repository

import (
	"context"
	"errors"
	"time"

	"eda-booking-service/internal/domain/entity"
	"eda-booking-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPresentationRepository implements PresentationRepository
type MongoPresentationRepository struct {
	collection *mongo.Collection
}

// NewMongoPresentationRepository creates a new presentation repository
func NewMongoPresentationRepository(db *mongo.Database) repository.PresentationRepository {
	collection := db.Collection("presentations")

	ctx := context.Background()

	// Index on createdAt for the admin listing order
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	// Compound index for the public upcoming query
	upcomingIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "date", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		createdAtIndex,
		upcomingIndex,
	})

	return &MongoPresentationRepository{
		collection: collection,
	}
}

// Insert stores a new presentation request
func (r *MongoPresentationRepository) Insert(ctx context.Context, p *entity.Presentation) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return &entity.StoreWriteError{Op: "insert presentation", Err: err}
	}
	return nil
}

// FindByID finds a presentation by id
func (r *MongoPresentationRepository) FindByID(ctx context.Context, id string) (*entity.Presentation, error) {
	var p entity.Presentation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll returns every presentation, most recently created first
func (r *MongoPresentationRepository) FindAll(ctx context.Context) ([]*entity.Presentation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	presentations := []*entity.Presentation{}
	if err := cursor.All(ctx, &presentations); err != nil {
		return nil, err
	}
	return presentations, nil
}

// FindUpcoming returns approved presentations dated on or after from,
// soonest first
func (r *MongoPresentationRepository) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Presentation, error) {
	filter := bson.M{
		"status": entity.PresentationApproved,
		"date":   bson.M{"$gte": from},
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	presentations := []*entity.Presentation{}
	if err := cursor.All(ctx, &presentations); err != nil {
		return nil, err
	}
	return presentations, nil
}

// UpdateStatus overwrites only the status field
func (r *MongoPresentationRepository) UpdateStatus(ctx context.Context, id string, status entity.PresentationStatus) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return &entity.StoreWriteError{Op: "update presentation status", Err: err}
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Update replaces the editable fields in a single write
func (r *MongoPresentationRepository) Update(ctx context.Context, id string, edit entity.PresentationEdit) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"city":        edit.City,
			"date":        edit.Date,
			"time":        edit.Time,
			"description": edit.Description,
			"status":      edit.Status,
		}},
	)
	if err != nil {
		return &entity.StoreWriteError{Op: "update presentation", Err: err}
	}
	if result.MatchedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes a presentation permanently
func (r *MongoPresentationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &entity.StoreWriteError{Op: "delete presentation", Err: err}
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Watch streams the full admin listing on every collection change. The
// first snapshot is emitted immediately; the channel closes when ctx ends.
func (r *MongoPresentationRepository) Watch(ctx context.Context) (<-chan []*entity.Presentation, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	initial, err := r.FindAll(ctx)
	if err != nil {
		stream.Close(ctx)
		return nil, err
	}

	out := make(chan []*entity.Presentation, 1)
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
