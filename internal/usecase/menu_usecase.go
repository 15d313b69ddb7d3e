package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type MenuUsecase struct {
	menus repo.MenuRepository
}

func NewMenuUsecase(menus repo.MenuRepository) *MenuUsecase {
	return &MenuUsecase{menus: menus}
}

type CreateMenuInput struct {
	Name        string
	Description string
	Price       int64
	Category    []string
	ImageURL    string
}

func (u *MenuUsecase) Create(ctx context.Context, storeID string, in CreateMenuInput) (string, error) {
	if in.Name == "" {
		return "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	id, err := u.menus.Create(ctx, model.Menu{
		StoreID:     storeID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *MenuUsecase) Update(ctx context.Context, storeID, menuID string, upd repo.MenuUpdate) error {
	err := u.menus.Update(ctx, storeID, menuID, upd)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *MenuUsecase) ToggleSoldout(ctx context.Context, storeID, menuID string, soldout bool) error {
	err := u.menus.SetSoldout(ctx, storeID, menuID, soldout)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *MenuUsecase) Delete(ctx context.Context, storeID, menuID string) error {
	err := u.menus.Delete(ctx, storeID, menuID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *MenuUsecase) List(ctx context.Context, storeID, category string) ([]model.Menu, error) {
	var (
		out []model.Menu
		err error
	)
	if category != "" {
		out, err = u.menus.ListByCategory(ctx, storeID, category)
	} else {
		out, err = u.menus.ListAll(ctx, storeID)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}
