package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	uc      *usecase.MenuUsecase
	storeID string
}

func NewMenuHandler(uc *usecase.MenuUsecase, storeID string) *MenuHandler {
	return &MenuHandler{uc: uc, storeID: storeID}
}

type MenuCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    []string `json:"category"`
	ImageURL    string   `json:"image_url"`
}

type MenuUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Category    []string `json:"category"`
	ImageURL    *string  `json:"image_url"`
}

type MenuSoldoutRequest struct {
	Soldout bool `json:"soldout"`
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 메뉴 목록은 비로그인 고객도 본다
	e.GET("/menus", h.list)

	admin := e.Group("/admin/menus")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.PUT("/:id/soldout", h.toggleSoldout)
	admin.DELETE("/:id", h.delete)
}

func (h *MenuHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), h.storeID, c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) create(c echo.Context) error {
	var req MenuCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), h.storeID, usecase.CreateMenuInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (h *MenuHandler) update(c echo.Context) error {
	var req MenuUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.Update(c.Request().Context(), h.storeID, c.Param("id"), repo.MenuUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *MenuHandler) toggleSoldout(c echo.Context) error {
	var req MenuSoldoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ToggleSoldout(c.Request().Context(), h.storeID, c.Param("id"), req.Soldout); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *MenuHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
