package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const StoresCollection = "stores"

type StoreMongoRepository struct {
	coll *mongo.Collection
}

func NewStoreMongoRepository(db *mongo.Database) *StoreMongoRepository {
	return &StoreMongoRepository{coll: db.Collection(StoresCollection)}
}

func (r *StoreMongoRepository) FindByID(ctx context.Context, storeID string) (model.Store, error) {
	var s model.Store
	err := r.coll.FindOne(ctx, bson.M{"_id": storeID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Store{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Store{}, err
	}
	return s, nil
}
