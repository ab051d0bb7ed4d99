package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-6) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative comparison for large values")
	}
}

func TestFirstNonFinite(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want int
	}{
		{name: "empty", data: nil, want: -1},
		{name: "finite", data: []float64{0, 1, -2}, want: -1},
		{name: "nan", data: []float64{0, math.NaN()}, want: 1},
		{name: "inf", data: []float64{math.Inf(-1), 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstNonFinite(tt.data); got != tt.want {
				t.Fatalf("FirstNonFinite() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWholeSeconds(t *testing.T) {
	tests := []struct {
		start, stop float64
		want        int
	}{
		{start: 1126259446, stop: 1126259478, want: 32},
		{start: 0, stop: 4.75, want: 4},
		{start: 10, stop: 10, want: 0},
		{start: 10, stop: 5, want: 0},
	}

	for _, tt := range tests {
		if got := WholeSeconds(tt.start, tt.stop); got != tt.want {
			t.Fatalf("WholeSeconds(%v, %v) = %d, want %d", tt.start, tt.stop, got, tt.want)
		}
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}
