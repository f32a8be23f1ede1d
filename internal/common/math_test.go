package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{5, 5},
		{-5, 5},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Abs(tt.input), "Abs(%d)", tt.input)
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		min, max int
	}{
		{"a smaller", 3, 5, 3, 5},
		{"b smaller", 7, 2, 2, 7},
		{"equal", 4, 4, 4, 4},
		{"negative", -5, -3, -5, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.min, Min(tt.a, tt.b))
			assert.Equal(t, tt.max, Max(tt.a, tt.b))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-3, 1, 4))
	assert.Equal(t, 4, Clamp(9, 1, 4))
	assert.Equal(t, 2, Clamp(2, 1, 4))
}
