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

const MenusCollection = "menus"

type MenuMongoRepository struct {
	coll *mongo.Collection
}

func NewMenuMongoRepository(db *mongo.Database) *MenuMongoRepository {
	return &MenuMongoRepository{coll: db.Collection(MenusCollection)}
}

func (r *MenuMongoRepository) Create(ctx context.Context, menu model.Menu) (string, error) {
	menu.ID = primitive.NewObjectID().Hex()
	menu.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, menu); err != nil {
		return "", err
	}
	return menu.ID, nil
}

func (r *MenuMongoRepository) FindByID(ctx context.Context, storeID, menuID string) (model.Menu, error) {
	var m model.Menu
	err := r.coll.FindOne(ctx, bson.M{"_id": menuID, "storeId": storeID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Menu{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Menu{}, err
	}
	return m, nil
}

func (r *MenuMongoRepository) Update(ctx context.Context, storeID, menuID string, upd repo.MenuUpdate) error {
	fields := bson.M{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Price != nil {
		fields["price"] = *upd.Price
	}
	if upd.Category != nil {
		fields["category"] = upd.Category
	}
	if upd.ImageURL != nil {
		fields["imageUrl"] = *upd.ImageURL
	}
	return r.set(ctx, storeID, menuID, fields)
}

func (r *MenuMongoRepository) SetSoldout(ctx context.Context, storeID, menuID string, soldout bool) error {
	return r.set(ctx, storeID, menuID, bson.M{"soldout": soldout})
}

func (r *MenuMongoRepository) Delete(ctx context.Context, storeID, menuID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": menuID, "storeId": storeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuMongoRepository) ListAll(ctx context.Context, storeID string) ([]model.Menu, error) {
	return r.list(ctx, bson.M{"storeId": storeID})
}

func (r *MenuMongoRepository) ListByCategory(ctx context.Context, storeID, category string) ([]model.Menu, error) {
	// category는 배열 필드라 멤버십 매치
	return r.list(ctx, bson.M{"storeId": storeID, "category": category})
}

func (r *MenuMongoRepository) list(ctx context.Context, filter bson.M) ([]model.Menu, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Menu{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MenuMongoRepository) set(ctx context.Context, storeID, menuID string, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": menuID, "storeId": storeID},
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
