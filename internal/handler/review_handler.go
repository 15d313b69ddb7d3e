package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc      *usecase.ReviewUsecase
	storeID string
}

func NewReviewHandler(uc *usecase.ReviewUsecase, storeID string) *ReviewHandler {
	return &ReviewHandler{uc: uc, storeID: storeID}
}

type ReviewCreateRequest struct {
	OrderID  string `json:"order_id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 리뷰 목록은 공개 (min_rating 쿼리로 평점 필터)
	e.GET("/reviews", h.list)

	user := e.Group("/reviews")
	user.Use(middleware.AuthJWT(cfg))
	user.POST("", h.create)
	user.DELETE("/:id", h.delete)
	user.GET("/by-order/:orderId", h.byOrder)

	admin := e.Group("/admin/reviews")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.list)
	admin.DELETE("/:id", h.adminDelete)
}

func (h *ReviewHandler) adminDelete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id"), ""); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *ReviewHandler) list(c echo.Context) error {
	minRating := 0
	if v := c.QueryParam("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_rating"})
		}
		minRating = n
	}

	out, err := h.uc.List(c.Request().Context(), h.storeID, minRating)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), h.storeID, usecase.CreateReviewInput{
		OrderID:  req.OrderID,
		UserID:   userID,
		UserName: req.UserName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (h *ReviewHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id"), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *ReviewHandler) byOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	rv, err := h.uc.GetByOrder(c.Request().Context(), h.storeID, c.Param("orderId"), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}
