package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalAmount(t *testing.T) {
	tests := []struct {
		name       string
		principal  decimal.Decimal
		percentage decimal.Decimal
		expected   decimal.Decimal
	}{
		{
			name:       "standard loan calculation",
			principal:  decimal.NewFromInt(1000),
			percentage: decimal.NewFromInt(10),
			expected:   decimal.NewFromInt(1100), // 1000 + 1000 * 10 / 100
		},
		{
			name:       "fractional percentage",
			principal:  decimal.NewFromInt(2500),
			percentage: decimal.NewFromFloat(12.5),
			expected:   decimal.NewFromFloat(2812.5),
		},
		{
			name:       "rounds to cents",
			principal:  decimal.NewFromInt(100),
			percentage: decimal.RequireFromString("33.333"),
			expected:   decimal.RequireFromString("133.33"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateTotalAmount(tt.principal, tt.percentage)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestGrowthPercentage(t *testing.T) {
	tests := []struct {
		name     string
		previous int64
		current  int64
		expected decimal.Decimal
	}{
		{name: "no baseline with growth", previous: 0, current: 5, expected: decimal.NewFromInt(100)},
		{name: "no baseline no growth", previous: 0, current: 0, expected: decimal.Zero},
		{name: "decline", previous: 10, current: 8, expected: decimal.NewFromInt(-20)},
		{name: "doubling", previous: 4, current: 8, expected: decimal.NewFromInt(100)},
		{name: "rounded", previous: 3, current: 4, expected: decimal.RequireFromString("33.33")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GrowthPercentage(tt.previous, tt.current)
			assert.True(t, result.Equal(tt.expected), "Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	prev, cur, next := MonthWindows(now)

	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), prev)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), cur)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), next)
}

func TestYearWindow(t *testing.T) {
	start, end := YearWindow(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestBucketKeys(t *testing.T) {
	ts := time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-08", MonthKey(ts))
	assert.Equal(t, "2025-Q3", QuarterKey(ts))
	assert.Equal(t, "2025", YearKey(ts))
	assert.Equal(t, "2025-Q1", QuarterKey(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-Q4", QuarterKey(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFitsScale(t *testing.T) {
	tests := []struct {
		value  string
		places int32
		want   bool
	}{
		{"1100", 2, true},
		{"300.5", 2, true},
		{"1100.00", 2, true},
		{"1099.9950", 2, false},
		{"0.004", 2, false},
		{"10.1234", 4, true},
		{"10.00001", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FitsScale(decimal.RequireFromString(tt.value), tt.places))
		})
	}
}
