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

const OrdersCollection = "orders"

type OrderMongoRepository struct {
	coll *mongo.Collection
}

func NewOrderMongoRepository(db *mongo.Database) *OrderMongoRepository {
	return &OrderMongoRepository{coll: db.Collection(OrdersCollection)}
}

func (r *OrderMongoRepository) Create(ctx context.Context, order model.Order) (string, error) {
	now := time.Now()
	order.ID = primitive.NewObjectID().Hex()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, storeID, orderID string) (model.Order, error) {
	var o model.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": orderID, "storeId": storeID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderMongoRepository) UpdateStatus(ctx context.Context, storeID, orderID string, status model.OrderStatus) error {
	return r.updateFields(ctx, storeID, orderID, bson.M{"status": status})
}

func (r *OrderMongoRepository) SetDeliveryStatus(ctx context.Context, storeID, orderID string, status model.OrderStatus, raw string) error {
	return r.updateFields(ctx, storeID, orderID, bson.M{
		"status":         status,
		"deliveryStatus": raw,
	})
}

func (r *OrderMongoRepository) SetPaymentResult(ctx context.Context, storeID, orderID string, status model.OrderStatus, payment model.Payment) error {
	return r.updateFields(ctx, storeID, orderID, bson.M{
		"status":  status,
		"payment": payment,
	})
}

func (r *OrderMongoRepository) SetReviewMirror(ctx context.Context, storeID, orderID, text string, rating int, reviewedAt time.Time) error {
	return r.updateFields(ctx, storeID, orderID, bson.M{
		"reviewed":     true,
		"reviewText":   text,
		"reviewRating": rating,
		"reviewedAt":   reviewedAt,
	})
}

func (r *OrderMongoRepository) ClearReviewMirror(ctx context.Context, storeID, orderID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": orderID, "storeId": storeID},
		bson.M{
			"$set":   bson.M{"reviewed": false, "updatedAt": time.Now()},
			"$unset": bson.M{"reviewText": "", "reviewRating": "", "reviewedAt": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) Delete(ctx context.Context, storeID, orderID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": orderID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) ListByUser(ctx context.Context, storeID, userID string) ([]model.Order, error) {
	return r.list(ctx, bson.M{"storeId": storeID, "userId": userID})
}

func (r *OrderMongoRepository) ListByStatus(ctx context.Context, storeID string, status model.OrderStatus) ([]model.Order, error) {
	return r.list(ctx, bson.M{"storeId": storeID, "status": status})
}

func (r *OrderMongoRepository) ListAll(ctx context.Context, storeID string) ([]model.Order, error) {
	return r.list(ctx, bson.M{"storeId": storeID})
}

func (r *OrderMongoRepository) list(ctx context.Context, filter bson.M) ([]model.Order, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Order{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// updateFields는 updatedAt을 서버 시간으로 함께 갱신한다.
func (r *OrderMongoRepository) updateFields(ctx context.Context, storeID, orderID string, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": orderID, "storeId": storeID},
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
