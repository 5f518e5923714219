package rate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/timevalue/rate"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 0.25, false},
		{"just above minus one", -0.999999, false},
		{"minus one", -1, true},
		{"below minus one", -1.5, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := rate.Validate(tt.r)
			if tt.wantErr {
				assert.ErrorIs(t, err, rate.ErrInvalidRate)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSequenceValidate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, rate.Sequence{}.Validate(), rate.ErrEmptyRateSequence)
	assert.ErrorIs(t, rate.Sequence(nil).Validate(), rate.ErrEmptyRateSequence)
	assert.NoError(t, rate.Sequence{0.05, -0.5, 0}.Validate())

	err := rate.Sequence{0.05, -1}.Validate()
	require.ErrorIs(t, err, rate.ErrInvalidRate)
	assert.Contains(t, err.Error(), "period 2")
}

func TestConstant(t *testing.T) {
	t.Parallel()

	seq := rate.Constant(0.03, 4)
	assert.Equal(t, rate.Sequence{0.03, 0.03, 0.03, 0.03}, seq)
	assert.Equal(t, 4, seq.Periods())
	assert.Empty(t, rate.Constant(0.03, 0))
	assert.Empty(t, rate.Constant(0.03, -2))
}
