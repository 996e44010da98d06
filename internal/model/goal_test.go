package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoal_Remaining(t *testing.T) {
	g := &Goal{TargetAmount: 1000, CurrentAmount: 250}
	assert.InDelta(t, 750, g.Remaining(), 0.001)

	// Remaining plus current always equals the target.
	assert.InDelta(t, g.TargetAmount, g.Remaining()+g.CurrentAmount, 0.001)
}

func TestGoal_Percentage(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		current float64
		want    float64
	}{
		{name: "empty goal", target: 1000, current: 0, want: 0},
		{name: "quarter funded", target: 1000, current: 250, want: 25},
		{name: "fully funded", target: 1000, current: 1000, want: 100},
		{name: "zero target guards division", target: 0, current: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{TargetAmount: tt.target, CurrentAmount: tt.current}
			assert.InDelta(t, tt.want, g.Percentage(), 0.001)
		})
	}
}

func TestGoal_Reached(t *testing.T) {
	assert.False(t, (&Goal{TargetAmount: 100, CurrentAmount: 99.99}).Reached())
	assert.True(t, (&Goal{TargetAmount: 100, CurrentAmount: 100}).Reached())
}
