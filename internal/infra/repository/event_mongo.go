package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const EventsCollection = "events"

type EventMongoRepository struct {
	coll *mongo.Collection
}

func NewEventMongoRepository(db *mongo.Database) *EventMongoRepository {
	return &EventMongoRepository{coll: db.Collection(EventsCollection)}
}

func (r *EventMongoRepository) Create(ctx context.Context, event model.Event) (string, error) {
	event.ID = primitive.NewObjectID().Hex()
	event.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return "", err
	}
	return event.ID, nil
}

func (r *EventMongoRepository) FindByID(ctx context.Context, storeID, eventID string) (model.Event, error) {
	var e model.Event
	err := r.coll.FindOne(ctx, bson.M{"_id": eventID, "storeId": storeID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	return e, nil
}

func (r *EventMongoRepository) Update(ctx context.Context, storeID, eventID string, upd repo.EventUpdate) error {
	fields := bson.M{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.ImageURL != nil {
		fields["imageUrl"] = *upd.ImageURL
	}
	if upd.Link != nil {
		fields["link"] = *upd.Link
	}
	if upd.Active != nil {
		fields["active"] = *upd.Active
	}
	if upd.StartDate != nil {
		fields["startDate"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		fields["endDate"] = *upd.EndDate
	}

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": eventID, "storeId": storeID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EventMongoRepository) Delete(ctx context.Context, storeID, eventID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": eventID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EventMongoRepository) ListAll(ctx context.Context, storeID string) ([]model.Event, error) {
	return r.list(ctx, bson.M{"storeId": storeID})
}

func (r *EventMongoRepository) ListActive(ctx context.Context, storeID string) ([]model.Event, error) {
	return r.list(ctx, bson.M{"storeId": storeID, "active": true})
}

func (r *EventMongoRepository) list(ctx context.Context, filter bson.M) ([]model.Event, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Event{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
