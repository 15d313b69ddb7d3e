package repository

import (
	"context"

	"app/internal/domain/model"
)

type StoreRepository interface {
	FindByID(ctx context.Context, storeID string) (model.Store, error)
}
