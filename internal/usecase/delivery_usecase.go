package usecase

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type DeliveryUsecase struct {
	orders repo.OrderRepository
	stores repo.StoreRepository
}

func NewDeliveryUsecase(orders repo.OrderRepository, stores repo.StoreRepository) *DeliveryUsecase {
	return &DeliveryUsecase{orders: orders, stores: stores}
}

type DeliveryUpdateInput struct {
	Status  string
	OrderID string
	ShopID  string
	StoreID string
}

type DeliveryUpdateResult struct {
	// 매핑되지 않는 상태라 아무것도 바꾸지 않은 경우 true
	NoChange bool
	Status   model.OrderStatus
}

// Update는 배달업체 웹훅의 본체. 업체 상태 어휘를 내부 상태로 매핑해 기록한다.
func (u *DeliveryUsecase) Update(ctx context.Context, in DeliveryUpdateInput) (DeliveryUpdateResult, error) {
	if in.OrderID == "" || in.Status == "" {
		return DeliveryUpdateResult{}, NewHTTPError(http.StatusBadRequest, "Missing orderId or status")
	}

	log.Printf("[Webhook] Received update for Order %s: %s", in.OrderID, in.Status)

	o, err := u.orders.FindByID(ctx, in.StoreID, in.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return DeliveryUpdateResult{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return DeliveryUpdateResult{}, err
	}

	// shopId 대조는 soft check: 불일치는 경고만 남기고 막지 않는다
	if store, err := u.stores.FindByID(ctx, o.StoreID); err == nil {
		configured := store.Settings.DeliverySettings.ShopID
		if configured != "" && configured != in.ShopID {
			log.Printf("[Webhook] Shop ID mismatch. Configured: %s, Received: %s", configured, in.ShopID)
		}
	}

	internal, ok := MapDeliveryStatus(in.Status)
	if !ok {
		log.Printf("[Webhook] Unmapped status: %s. Ignoring state change.", in.Status)
		return DeliveryUpdateResult{NoChange: true}, nil
	}

	if err := u.orders.SetDeliveryStatus(ctx, in.StoreID, in.OrderID, internal, in.Status); err != nil {
		return DeliveryUpdateResult{}, err
	}
	return DeliveryUpdateResult{Status: internal}, nil
}

// MapDeliveryStatus는 배달업체 상태 토큰을 내부 상태로 매핑한다 (대소문자 무시).
func MapDeliveryStatus(external string) (model.OrderStatus, bool) {
	switch strings.ToUpper(external) {
	case "ACCEPTED", "ASSIGNED":
		return model.OrderStatusCarrierAssigned, true
	case "PICKUP", "PICKED_UP":
		return model.OrderStatusDelivering, true
	case "COMPLETE", "DELIVERED":
		return model.OrderStatusCompleted, true
	case "CANCELED":
		return model.OrderStatusDeliveryCanceled, true
	default:
		return "", false
	}
}
