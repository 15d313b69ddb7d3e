package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	uc      *usecase.EventUsecase
	storeID string
}

func NewEventHandler(uc *usecase.EventUsecase, storeID string) *EventHandler {
	return &EventHandler{uc: uc, storeID: storeID}
}

type EventCreateRequest struct {
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Link      string    `json:"link"`
	Active    bool      `json:"active"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type EventUpdateRequest struct {
	Title     *string    `json:"title"`
	ImageURL  *string    `json:"image_url"`
	Link      *string    `json:"link"`
	Active    *bool      `json:"active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 노출 기간 내 활성 이벤트는 공개
	e.GET("/events", h.listVisible)

	admin := e.Group("/admin/events")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.listAll)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *EventHandler) listVisible(c echo.Context) error {
	out, err := h.uc.ListVisible(c.Request().Context(), h.storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context(), h.storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EventHandler) create(c echo.Context) error {
	var req EventCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), h.storeID, usecase.CreateEventInput{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		Active:    req.Active,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (h *EventHandler) update(c echo.Context) error {
	var req EventUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.Update(c.Request().Context(), h.storeID, c.Param("id"), repo.EventUpdate{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Link:      req.Link,
		Active:    req.Active,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *EventHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
