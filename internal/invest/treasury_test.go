package invest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateForTerm(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		wantRate float64
		wantErr  bool
	}{
		{name: "91 day bill", days: 91, wantRate: 26.8293},
		{name: "182 day bill", days: 182, wantRate: 27.7876},
		{name: "364 day bill", days: 364, wantRate: 29.2178},
		{name: "unsupported term", days: 180, wantErr: true},
		{name: "zero term", days: 0, wantErr: true},
		{name: "negative term", days: -91, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := RateForTerm(tt.days)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTerm))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantRate, rate, 0.0001)
		})
	}
}

func TestProjectedReturn(t *testing.T) {
	// 1000 at 26.8293% for 91 days: 1000 * (1 + 0.268293 * 91/365)
	got := ProjectedReturn(1000, 26.8293, 91)
	assert.InDelta(t, 1066.886, got, 0.01)

	// A full 365-day term at 10% returns exactly principal * 1.10.
	assert.InDelta(t, 110, ProjectedReturn(100, 10, 365), 0.0001)

	// Zero principal projects to zero.
	assert.InDelta(t, 0, ProjectedReturn(0, 29.2178, 364), 0.0001)
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []int{91, 182, 364}, Terms())
}
