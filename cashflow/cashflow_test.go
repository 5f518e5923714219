package cashflow_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meenmo/timevalue/cashflow"
)

func TestFromAmounts(t *testing.T) {
	t.Parallel()

	s := cashflow.FromAmounts([]float64{-100, 60, 60})
	assert.Equal(t, cashflow.Series{
		{Period: 0, Amount: -100},
		{Period: 1, Amount: 60},
		{Period: 2, Amount: 60},
	}, s)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		series  cashflow.Series
		wantErr error
	}{
		{"valid", cashflow.FromAmounts([]float64{-100, 110}), nil},
		{"empty", cashflow.Series{}, cashflow.ErrInvalidInput},
		{"single entry", cashflow.FromAmounts([]float64{-100}), cashflow.ErrInvalidInput},
		{"negative period", cashflow.Series{{Period: -1, Amount: -100}, {Period: 0, Amount: 110}}, cashflow.ErrNegativePeriod},
		{"nan amount", cashflow.FromAmounts([]float64{-100, math.NaN()}), cashflow.ErrInvalidInput},
		{"infinite amount", cashflow.FromAmounts([]float64{math.Inf(-1), 10}), cashflow.ErrInvalidInput},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.series.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHasSignChange(t *testing.T) {
	t.Parallel()

	assert.True(t, cashflow.FromAmounts([]float64{-100, 110}).HasSignChange())
	assert.True(t, cashflow.FromAmounts([]float64{100, 20, -130}).HasSignChange())
	assert.True(t, cashflow.FromAmounts([]float64{0, 100}).HasSignChange())
	assert.False(t, cashflow.FromAmounts([]float64{100, 100}).HasSignChange())
	assert.False(t, cashflow.FromAmounts([]float64{-100, -1}).HasSignChange())
}
