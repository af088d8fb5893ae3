package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAppliedPrice(t *testing.T) {
	cases := []struct {
		name            string
		base, reduction float64
		want            float64
	}{
		{"vip discount", 80, 15, 68},
		{"no reduction", 100, 0, 100},
		{"full reduction", 100, 100, 0},
		{"negative reduction clamped", 100, -10, 100},
		{"reduction above 100 clamped", 100, 150, 0},
		{"rounded to cents", 99.99, 33, 66.99},
		{"weekend promo", 150, 10, 135},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CalculateAppliedPrice(tc.base, tc.reduction), 1e-9)
		})
	}
}

func TestCalculateAppliedPriceNonFiniteKeepsBase(t *testing.T) {
	assert.Equal(t, 80.0, CalculateAppliedPrice(80, math.NaN()))
	assert.Equal(t, 80.0, CalculateAppliedPrice(80, math.Inf(1)))
}
