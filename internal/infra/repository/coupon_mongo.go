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

const CouponsCollection = "coupons"

type CouponMongoRepository struct {
	coll *mongo.Collection
}

func NewCouponMongoRepository(db *mongo.Database) *CouponMongoRepository {
	return &CouponMongoRepository{coll: db.Collection(CouponsCollection)}
}

func (r *CouponMongoRepository) Create(ctx context.Context, coupon model.Coupon) (string, error) {
	coupon.ID = primitive.NewObjectID().Hex()
	coupon.UsedCount = 0
	coupon.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, coupon); err != nil {
		return "", err
	}
	return coupon.ID, nil
}

func (r *CouponMongoRepository) FindByID(ctx context.Context, storeID, couponID string) (model.Coupon, error) {
	var c model.Coupon
	err := r.coll.FindOne(ctx, bson.M{"_id": couponID, "storeId": storeID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return c, nil
}

func (r *CouponMongoRepository) Update(ctx context.Context, storeID, couponID string, upd repo.CouponUpdate) error {
	fields := bson.M{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.DiscountType != nil {
		fields["discountType"] = *upd.DiscountType
	}
	if upd.DiscountValue != nil {
		fields["discountValue"] = *upd.DiscountValue
	}
	if upd.MaxDiscountAmount != nil {
		fields["maxDiscountAmount"] = *upd.MaxDiscountAmount
	}
	if upd.MinOrderAmount != nil {
		fields["minOrderAmount"] = *upd.MinOrderAmount
	}
	if upd.ValidFrom != nil {
		fields["validFrom"] = *upd.ValidFrom
	}
	if upd.ValidUntil != nil {
		fields["validUntil"] = *upd.ValidUntil
	}
	if upd.AssignedUserID != nil {
		fields["assignedUserId"] = *upd.AssignedUserID
	}
	if upd.AssignedUserName != nil {
		fields["assignedUserName"] = *upd.AssignedUserName
	}
	if upd.AssignedUserPhone != nil {
		fields["assignedUserPhone"] = *upd.AssignedUserPhone
	}
	return r.set(ctx, storeID, couponID, fields)
}

func (r *CouponMongoRepository) SetActive(ctx context.Context, storeID, couponID string, active bool) error {
	return r.set(ctx, storeID, couponID, bson.M{"isActive": active})
}

func (r *CouponMongoRepository) MarkUsed(ctx context.Context, storeID, couponID string, usedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": couponID, "storeId": storeID},
		bson.M{
			"$set": bson.M{"isUsed": true, "usedAt": usedAt, "updatedAt": time.Now()},
			"$inc": bson.M{"usedCount": 1},
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

func (r *CouponMongoRepository) Delete(ctx context.Context, storeID, couponID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": couponID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CouponMongoRepository) ListAll(ctx context.Context, storeID string) ([]model.Coupon, error) {
	return r.list(ctx, bson.M{"storeId": storeID})
}

func (r *CouponMongoRepository) ListActive(ctx context.Context, storeID string) ([]model.Coupon, error) {
	return r.list(ctx, bson.M{"storeId": storeID, "isActive": true})
}

func (r *CouponMongoRepository) list(ctx context.Context, filter bson.M) ([]model.Coupon, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Coupon{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CouponMongoRepository) set(ctx context.Context, storeID, couponID string, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": couponID, "storeId": storeID},
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
