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

const ReviewsCollection = "reviews"

type ReviewMongoRepository struct {
	coll *mongo.Collection
}

func NewReviewMongoRepository(db *mongo.Database) *ReviewMongoRepository {
	return &ReviewMongoRepository{coll: db.Collection(ReviewsCollection)}
}

func (r *ReviewMongoRepository) Create(ctx context.Context, review model.Review) (string, error) {
	review.ID = primitive.NewObjectID().Hex()
	review.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return "", err
	}
	return review.ID, nil
}

func (r *ReviewMongoRepository) FindByID(ctx context.Context, storeID, reviewID string) (model.Review, error) {
	var rv model.Review
	err := r.coll.FindOne(ctx, bson.M{"_id": reviewID, "storeId": storeID}).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *ReviewMongoRepository) FindByOrder(ctx context.Context, storeID, orderID, userID string) (model.Review, error) {
	var rv model.Review
	err := r.coll.FindOne(ctx, bson.M{
		"storeId": storeID,
		"orderId": orderID,
		"userId":  userID,
	}).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Review{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *ReviewMongoRepository) Delete(ctx context.Context, storeID, reviewID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": reviewID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReviewMongoRepository) ListAll(ctx context.Context, storeID string) ([]model.Review, error) {
	return r.list(ctx, bson.M{"storeId": storeID},
		bson.D{{Key: "createdAt", Value: -1}})
}

func (r *ReviewMongoRepository) ListByMinRating(ctx context.Context, storeID string, minRating int) ([]model.Review, error) {
	return r.list(ctx,
		bson.M{"storeId": storeID, "rating": bson.M{"$gte": minRating}},
		bson.D{{Key: "rating", Value: -1}, {Key: "createdAt", Value: -1}})
}

func (r *ReviewMongoRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]model.Review, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Review{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
