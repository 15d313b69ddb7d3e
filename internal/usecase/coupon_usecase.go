package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type CouponUsecase struct {
	coupons repo.CouponRepository
	clock   Clock
}

func NewCouponUsecase(coupons repo.CouponRepository, clock Clock) *CouponUsecase {
	return &CouponUsecase{coupons: coupons, clock: clock}
}

type CreateCouponInput struct {
	Name              string
	DiscountType      model.DiscountType
	DiscountValue     int64
	MaxDiscountAmount *int64
	MinOrderAmount    int64
	ValidFrom         time.Time
	ValidUntil        time.Time
	IsActive          bool
	AssignedUserID    string
	AssignedUserName  string
	AssignedUserPhone string
}

func (u *CouponUsecase) Create(ctx context.Context, storeID string, in CreateCouponInput) (string, error) {
	if in.Name == "" {
		return "", NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.DiscountValue <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid discount value")
	}
	switch in.DiscountType {
	case model.DiscountTypeFixed, model.DiscountTypePercentage:
	default:
		return "", NewHTTPError(http.StatusBadRequest, "invalid discount type")
	}
	if in.ValidUntil.Before(in.ValidFrom) {
		return "", NewHTTPError(http.StatusBadRequest, "invalid validity window")
	}

	id, err := u.coupons.Create(ctx, model.Coupon{
		StoreID:           storeID,
		Code:              GenerateCouponCode(in.Name),
		Name:              in.Name,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		MaxDiscountAmount: in.MaxDiscountAmount,
		MinOrderAmount:    in.MinOrderAmount,
		ValidFrom:         in.ValidFrom,
		ValidUntil:        in.ValidUntil,
		IsActive:          in.IsActive,
		AssignedUserID:    in.AssignedUserID,
		AssignedUserName:  in.AssignedUserName,
		AssignedUserPhone: in.AssignedUserPhone,
	})
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return id, nil
}

func (u *CouponUsecase) Update(ctx context.Context, storeID, couponID string, upd repo.CouponUpdate) error {
	c, err := u.find(ctx, storeID, couponID)
	if err != nil {
		return err
	}
	// 사용 완료 쿠폰은 수정 불가
	if c.IsUsed {
		return NewHTTPError(http.StatusBadRequest, "used coupon cannot be modified")
	}

	if err := u.coupons.Update(ctx, storeID, couponID, upd); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CouponUsecase) ToggleActive(ctx context.Context, storeID, couponID string, active bool) error {
	c, err := u.find(ctx, storeID, couponID)
	if err != nil {
		return err
	}
	// 사용 완료 쿠폰은 재활성화 불가
	if c.IsUsed {
		return NewHTTPError(http.StatusBadRequest, "used coupon cannot be reactivated")
	}

	if err := u.coupons.SetActive(ctx, storeID, couponID, active); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Use는 쿠폰 소비. 사용 가능 판정(활성 && 미사용 && 기한 내)을 통과해야 한다.
func (u *CouponUsecase) Use(ctx context.Context, storeID, couponID string) error {
	c, err := u.find(ctx, storeID, couponID)
	if err != nil {
		return err
	}

	now := u.clock.Now()
	if !c.Usable(now) {
		return NewHTTPError(http.StatusBadRequest, "coupon not usable")
	}

	if err := u.coupons.MarkUsed(ctx, storeID, couponID, now); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CouponUsecase) Delete(ctx context.Context, storeID, couponID string) error {
	err := u.coupons.Delete(ctx, storeID, couponID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CouponUsecase) ListAll(ctx context.Context, storeID string) ([]model.Coupon, error) {
	out, err := u.coupons.ListAll(ctx, storeID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *CouponUsecase) ListActive(ctx context.Context, storeID string) ([]model.Coupon, error) {
	out, err := u.coupons.ListActive(ctx, storeID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return out, nil
}

func (u *CouponUsecase) find(ctx context.Context, storeID, couponID string) (model.Coupon, error) {
	c, err := u.coupons.FindByID(ctx, storeID, couponID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 쿠폰명 → 코드 접두사 매핑
var couponCodePrefixes = map[string]string{
	"회원가입축하쿠폰": "WELCOME",
	"이벤트쿠폰":    "EVENT",
	"감사쿠폰":     "THANKS",
}

// GenerateCouponCode는 접두사 + 랜덤 6자리 코드를 만든다.
func GenerateCouponCode(name string) string {
	prefix, ok := couponCodePrefixes[name]
	if !ok {
		prefix = "COUPON"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return prefix + suffix
}
