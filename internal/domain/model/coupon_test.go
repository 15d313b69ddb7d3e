package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_Usable(t *testing.T) {
	until := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

	base := Coupon{
		IsActive:   true,
		IsUsed:     false,
		ValidUntil: until,
	}

	t.Run("기한 내 활성 미사용", func(t *testing.T) {
		assert.True(t, base.Usable(until.Add(-24*time.Hour)))
	})

	t.Run("validUntil 정확히 그 시각은 포함", func(t *testing.T) {
		assert.True(t, base.Usable(until))
	})

	t.Run("기한 경과", func(t *testing.T) {
		assert.False(t, base.Usable(until.Add(time.Second)))
	})

	t.Run("비활성", func(t *testing.T) {
		c := base
		c.IsActive = false
		assert.False(t, c.Usable(until.Add(-time.Hour)))
	})

	t.Run("사용 완료", func(t *testing.T) {
		c := base
		c.IsUsed = true
		assert.False(t, c.Usable(until.Add(-time.Hour)))
	})
}
