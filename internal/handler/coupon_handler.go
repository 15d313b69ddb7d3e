package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	uc      *usecase.CouponUsecase
	storeID string
}

func NewCouponHandler(uc *usecase.CouponUsecase, storeID string) *CouponHandler {
	return &CouponHandler{uc: uc, storeID: storeID}
}

type CouponCreateRequest struct {
	Name              string     `json:"name"`
	DiscountType      string     `json:"discount_type"`
	DiscountValue     int64      `json:"discount_value"`
	MaxDiscountAmount *int64     `json:"max_discount_amount"`
	MinOrderAmount    int64      `json:"min_order_amount"`
	ValidFrom         time.Time  `json:"valid_from"`
	ValidUntil        time.Time  `json:"valid_until"`
	IsActive          bool       `json:"is_active"`
	AssignedUserID    string     `json:"assigned_user_id"`
	AssignedUserName  string     `json:"assigned_user_name"`
	AssignedUserPhone string     `json:"assigned_user_phone"`
}

type CouponUpdateRequest struct {
	Name              *string    `json:"name"`
	DiscountType      *string    `json:"discount_type"`
	DiscountValue     *int64     `json:"discount_value"`
	MaxDiscountAmount *int64     `json:"max_discount_amount"`
	MinOrderAmount    *int64     `json:"min_order_amount"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidUntil        *time.Time `json:"valid_until"`
}

type CouponActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *CouponHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 고객: 사용 가능한 쿠폰 목록 + 쿠폰 소비
	user := e.Group("/coupons")
	user.Use(middleware.AuthJWT(cfg))
	user.GET("", h.listActive)
	user.POST("/:id/use", h.use)

	admin := e.Group("/admin/coupons")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())
	admin.GET("", h.listAll)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.PUT("/:id/active", h.toggleActive)
	admin.DELETE("/:id", h.delete)
}

func (h *CouponHandler) listActive(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context(), h.storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) use(c echo.Context) error {
	if err := h.uc.Use(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "used"})
}

func (h *CouponHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context(), h.storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CouponHandler) create(c echo.Context) error {
	var req CouponCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.Create(c.Request().Context(), h.storeID, usecase.CreateCouponInput{
		Name:              req.Name,
		DiscountType:      model.DiscountType(req.DiscountType),
		DiscountValue:     req.DiscountValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinOrderAmount:    req.MinOrderAmount,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
		IsActive:          req.IsActive,
		AssignedUserID:    req.AssignedUserID,
		AssignedUserName:  req.AssignedUserName,
		AssignedUserPhone: req.AssignedUserPhone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

func (h *CouponHandler) update(c echo.Context) error {
	var req CouponUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	upd := repo.CouponUpdate{
		Name:              req.Name,
		DiscountValue:     req.DiscountValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinOrderAmount:    req.MinOrderAmount,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
	}
	if req.DiscountType != nil {
		dt := model.DiscountType(*req.DiscountType)
		upd.DiscountType = &dt
	}

	if err := h.uc.Update(c.Request().Context(), h.storeID, c.Param("id"), upd); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *CouponHandler) toggleActive(c echo.Context) error {
	var req CouponActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ToggleActive(c.Request().Context(), h.storeID, c.Param("id"), req.IsActive); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *CouponHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
