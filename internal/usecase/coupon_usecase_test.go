package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) Create(ctx context.Context, coupon model.Coupon) (string, error) {
	args := m.Called(ctx, coupon)
	return args.String(0), args.Error(1)
}

func (m *CouponRepoMock) FindByID(ctx context.Context, storeID, couponID string) (model.Coupon, error) {
	args := m.Called(ctx, storeID, couponID)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) Update(ctx context.Context, storeID, couponID string, upd repo.CouponUpdate) error {
	args := m.Called(ctx, storeID, couponID, upd)
	return args.Error(0)
}

func (m *CouponRepoMock) SetActive(ctx context.Context, storeID, couponID string, active bool) error {
	args := m.Called(ctx, storeID, couponID, active)
	return args.Error(0)
}

func (m *CouponRepoMock) MarkUsed(ctx context.Context, storeID, couponID string, usedAt time.Time) error {
	args := m.Called(ctx, storeID, couponID, usedAt)
	return args.Error(0)
}

func (m *CouponRepoMock) Delete(ctx context.Context, storeID, couponID string) error {
	args := m.Called(ctx, storeID, couponID)
	return args.Error(0)
}

func (m *CouponRepoMock) ListAll(ctx context.Context, storeID string) ([]model.Coupon, error) {
	panic("not used in CouponUsecase tests")
}

func (m *CouponRepoMock) ListActive(ctx context.Context, storeID string) ([]model.Coupon, error) {
	panic("not used in CouponUsecase tests")
}

// fixedClock은 테스트에서 시간을 고정한다
type fixedClock struct{ at time.Time }

func (c *fixedClock) Now() time.Time { return c.at }

func validCouponInput() usecase.CreateCouponInput {
	return usecase.CreateCouponInput{
		Name:          "이벤트쿠폰",
		DiscountType:  model.DiscountTypeFixed,
		DiscountValue: 3000,
		ValidFrom:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
		IsActive:      true,
	}
}

// =====================
// Create / code generation
// =====================

func TestGenerateCouponCode(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
	}{
		{"회원가입축하쿠폰", "WELCOME"},
		{"이벤트쿠폰", "EVENT"},
		{"감사쿠폰", "THANKS"},
		{"아무쿠폰", "COUPON"},
	}

	for _, tc := range cases {
		code := usecase.GenerateCouponCode(tc.name)
		assert.True(t, strings.HasPrefix(code, tc.prefix), "code=%q want prefix %q", code, tc.prefix)
		assert.Len(t, code, len(tc.prefix)+6)
		assert.Equal(t, strings.ToUpper(code), code)
	}

	// 접미사는 매번 달라야 한다
	assert.NotEqual(t, usecase.GenerateCouponCode("감사쿠폰"), usecase.GenerateCouponCode("감사쿠폰"))
}

func TestCouponUsecase_Create(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	coupons.On("Create", mock.Anything, mock.MatchedBy(func(c model.Coupon) bool {
		return c.StoreID == "s1" && strings.HasPrefix(c.Code, "EVENT") && c.IsActive
	})).Return("c1", nil)

	id, err := uc.Create(context.Background(), "s1", validCouponInput())
	assert.NoError(t, err)
	assert.Equal(t, "c1", id)
	coupons.AssertExpectations(t)
}

func TestCouponUsecase_Create_Validation(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	noName := validCouponInput()
	noName.Name = ""
	_, err := uc.Create(context.Background(), "s1", noName)
	assertErrContains(t, err, "name required")

	badValue := validCouponInput()
	badValue.DiscountValue = 0
	_, err = uc.Create(context.Background(), "s1", badValue)
	assertErrContains(t, err, "invalid discount value")

	badType := validCouponInput()
	badType.DiscountType = "bogus"
	_, err = uc.Create(context.Background(), "s1", badType)
	assertErrContains(t, err, "invalid discount type")

	badWindow := validCouponInput()
	badWindow.ValidUntil = badWindow.ValidFrom.Add(-time.Hour)
	_, err = uc.Create(context.Background(), "s1", badWindow)
	assertErrContains(t, err, "invalid validity window")

	coupons.AssertNotCalled(t, "Create")
}

// =====================
// Use
// =====================

func TestCouponUsecase_Use(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{at: now})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{
		ID:         "c1",
		IsActive:   true,
		ValidUntil: now.Add(24 * time.Hour),
	}, nil)
	coupons.On("MarkUsed", mock.Anything, "s1", "c1", now).Return(nil)

	err := uc.Use(context.Background(), "s1", "c1")
	assert.NoError(t, err)
	coupons.AssertExpectations(t)
}

func TestCouponUsecase_Use_Expired(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{at: now})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{
		ID:         "c1",
		IsActive:   true,
		ValidUntil: now.Add(-time.Second),
	}, nil)

	err := uc.Use(context.Background(), "s1", "c1")
	assertErrContains(t, err, "coupon not usable")
	coupons.AssertNotCalled(t, "MarkUsed")
}

func TestCouponUsecase_Use_AlreadyUsed(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{at: now})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{
		ID:         "c1",
		IsActive:   true,
		IsUsed:     true,
		ValidUntil: now.Add(24 * time.Hour),
	}, nil)

	err := uc.Use(context.Background(), "s1", "c1")
	assertErrContains(t, err, "coupon not usable")
	coupons.AssertNotCalled(t, "MarkUsed")
}

func TestCouponUsecase_Use_NotFound(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	coupons.On("FindByID", mock.Anything, "s1", "missing").Return(model.Coupon{}, repo.ErrNotFound)

	err := uc.Use(context.Background(), "s1", "missing")
	assertErrContains(t, err, "not found")
}

// =====================
// Update / ToggleActive
// =====================

func TestCouponUsecase_Update_UsedCouponRejected(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{ID: "c1", IsUsed: true}, nil)

	name := "새이름"
	err := uc.Update(context.Background(), "s1", "c1", repo.CouponUpdate{Name: &name})
	assertErrContains(t, err, "used coupon")
	coupons.AssertNotCalled(t, "Update")
}

func TestCouponUsecase_ToggleActive_UsedCouponRejected(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{ID: "c1", IsUsed: true}, nil)

	err := uc.ToggleActive(context.Background(), "s1", "c1", true)
	assertErrContains(t, err, "used coupon")
	coupons.AssertNotCalled(t, "SetActive")
}

func TestCouponUsecase_ToggleActive(t *testing.T) {
	coupons := new(CouponRepoMock)
	uc := usecase.NewCouponUsecase(coupons, &fixedClock{})

	coupons.On("FindByID", mock.Anything, "s1", "c1").Return(model.Coupon{ID: "c1"}, nil)
	coupons.On("SetActive", mock.Anything, "s1", "c1", false).Return(nil)

	err := uc.ToggleActive(context.Background(), "s1", "c1", false)
	assert.NoError(t, err)
	coupons.AssertExpectations(t)
}
