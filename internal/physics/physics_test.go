package physics

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"Same point", 3, 4, 3, 4, 0},
		{"Horizontal", 0, 0, 5, 0, 5},
		{"Vertical", 0, 0, 0, 7, 7},
		{"Pythagorean", 0, 0, 3, 4, 5},
		{"Negative coordinates", -3, -4, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.x1, tt.y1, tt.x2, tt.y2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithinRange(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		dist           float64
		want           bool
	}{
		{"Well inside", 0, 0, 1, 1, 10, true},
		{"Exactly at range is exclusive", 0, 0, 5, 0, 5, false},
		{"Just inside", 0, 0, 4.99, 0, 5, true},
		{"Outside", 0, 0, 100, 0, 5, false},
		{"Symmetric", 100, 0, 0, 0, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinRange(tt.x1, tt.y1, tt.x2, tt.y2, tt.dist); got != tt.want {
				t.Errorf("WithinRange() = %v, want %v", got, tt.want)
			}
		})
	}
}
