package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/feed"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 어드민 주문 콘솔 API. 목록 + 실시간 스트림 + 상태 전이 + 삭제.
type AdminOrderHandler struct {
	uc      *usecase.OrderUsecase
	src     feed.Source[model.Order]
	storeID string
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase, src feed.Source[model.Order], storeID string) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, src: src, storeID: storeID}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.GET("/orders/stream", h.stream)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.PUT("/orders/:id/advance", h.advance)
	admin.PUT("/orders/:id/cancel", h.cancel)
	admin.DELETE("/orders/:id", h.delete)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	ctx := c.Request().Context()
	status := c.QueryParam("status")

	var (
		out []model.Order
		err error
	)
	if status != "" {
		out, err = h.uc.ListByStatus(ctx, h.storeID, model.OrderStatus(status))
	} else {
		out, err = h.uc.ListAll(ctx, h.storeID)
	}
	if err != nil {
		return writeError(c, err)
	}

	// 필터 없는 기본 뷰에서는 결제대기를 감춘다
	if status == "" {
		visible := make([]model.Order, 0, len(out))
		for _, o := range out {
			if o.Status != model.OrderStatusAwaitingPayment {
				visible = append(visible, o)
			}
		}
		out = visible
	}

	return c.JSON(http.StatusOK, out)
}

// stream은 전체 주문 피드를 SSE로 내보낸다. 갱신마다 전체 스냅샷이다.
func (h *AdminOrderHandler) stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	fd := feed.NewCollection(h.src)
	defer fd.Close()
	q := usecase.AllOrdersQuery(h.storeID)
	fd.SetQuery(&q)

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-fd.Updates():
			if snap.Err != nil {
				fmt.Fprintf(res, "event: error\ndata: %q\n\n", snap.Err.Error())
				res.Flush()
				return nil
			}
			if snap.Loading {
				continue
			}
			payload, err := json.Marshal(snap.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(res, "data: %s\n\n", payload)
			res.Flush()
		}
	}
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), h.storeID, c.Param("id"), model.OrderStatus(req.Status)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminOrderHandler) advance(c echo.Context) error {
	next, err := h.uc.Advance(c.Request().Context(), h.storeID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(next)})
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	if err := h.uc.Cancel(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "canceled"})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), h.storeID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
