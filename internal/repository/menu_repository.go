package repository

import (
	"context"

	"app/internal/domain/model"
)

type MenuUpdate struct {
	Name        *string
	Description *string
	Price       *int64
	Category    []string
	ImageURL    *string
}

type MenuRepository interface {
	Create(ctx context.Context, menu model.Menu) (string, error)
	FindByID(ctx context.Context, storeID, menuID string) (model.Menu, error)
	Update(ctx context.Context, storeID, menuID string, upd MenuUpdate) error
	SetSoldout(ctx context.Context, storeID, menuID string, soldout bool) error
	Delete(ctx context.Context, storeID, menuID string) error

	ListAll(ctx context.Context, storeID string) ([]model.Menu, error)
	ListByCategory(ctx context.Context, storeID, category string) ([]model.Menu, error)
}
