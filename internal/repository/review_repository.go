package repository

import (
	"context"

	"app/internal/domain/model"
)

type ReviewRepository interface {
	Create(ctx context.Context, review model.Review) (string, error)
	FindByID(ctx context.Context, storeID, reviewID string) (model.Review, error)
	FindByOrder(ctx context.Context, storeID, orderID, userID string) (model.Review, error)
	Delete(ctx context.Context, storeID, reviewID string) error

	ListAll(ctx context.Context, storeID string) ([]model.Review, error)
	// ListByMinRating은 rating desc, createdAt desc 정렬
	ListByMinRating(ctx context.Context, storeID string, minRating int) ([]model.Review, error)
}
