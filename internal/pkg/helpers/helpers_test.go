package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("90m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestSafeTime(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, at, SafeTime(&at))

	var zero time.Time
	assert.WithinDuration(t, time.Now(), SafeTime(&zero), time.Second)
	assert.WithinDuration(t, time.Now(), SafeTime(nil), time.Second)
}

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back", 0, 10, 0, 10},
		{"negative size falls back", 2, -5, uint64(DefaultPageSize), DefaultPageSize},
		{"oversized page size capped", 1, 500, 0, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)
	assert.Equal(t, 5, info.TotalPages)

	t.Run("empty result set still has one page", func(t *testing.T) {
		info := NewPaginationInfo(0, 1, 10)
		assert.Equal(t, 1, info.TotalPages)
	})

	t.Run("page beyond the end is clamped", func(t *testing.T) {
		info := NewPaginationInfo(5, 9, 10)
		assert.Equal(t, 1, info.CurrentPage)
	})
}
