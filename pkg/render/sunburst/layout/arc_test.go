package layout

import (
	"math"
	"testing"
)

func TestArcSweep(t *testing.T) {
	tests := []struct {
		name string
		arc  Arc
		want float64
	}{
		{name: "half", arc: Arc{X0: 0, X1: math.Pi}, want: math.Pi},
		{name: "zero", arc: Arc{X0: 1, X1: 1}, want: 0},
		{name: "full", arc: Arc{X0: 0, X1: 2 * math.Pi}, want: 2 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.Sweep(); got != tt.want {
				t.Errorf("Sweep() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcThickness(t *testing.T) {
	tests := []struct {
		name string
		arc  Arc
		want float64
	}{
		{name: "ring", arc: Arc{Y0: 10, Y1: 50}, want: 40},
		{name: "collapsed", arc: Arc{Y0: 10, Y1: 10}, want: 0},
		{name: "center disk", arc: Arc{Y0: 0, Y1: 100}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.Thickness(); got != tt.want {
				t.Errorf("Thickness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcPaddedAngles(t *testing.T) {
	tests := []struct {
		name               string
		arc                Arc
		wantStart, wantEnd float64
	}{
		{
			name:      "padded",
			arc:       Arc{X0: 1, X1: 2, PadAngle: 0.2},
			wantStart: 1.1, wantEnd: 1.9,
		},
		{
			name:      "padding wider than sweep collapses to mid",
			arc:       Arc{X0: 1, X1: 1.1, PadAngle: 0.5},
			wantStart: 1.05, wantEnd: 1.05,
		},
		{
			name:      "full circle ignores padding",
			arc:       Arc{X0: 0, X1: 2 * math.Pi, PadAngle: 0.3},
			wantStart: 0, wantEnd: 2 * math.Pi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arc.StartAngle(); math.Abs(got-tt.wantStart) > 1e-12 {
				t.Errorf("StartAngle() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.arc.EndAngle(); math.Abs(got-tt.wantEnd) > 1e-12 {
				t.Errorf("EndAngle() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestPoint(t *testing.T) {
	tests := []struct {
		angle, radius float64
		wantX, wantY  float64
	}{
		{0, 10, 0, -10},
		{math.Pi / 2, 10, 10, 0},
		{math.Pi, 10, 0, 10},
		{3 * math.Pi / 2, 10, -10, 0},
	}

	for _, tt := range tests {
		x, y := Point(tt.angle, tt.radius)
		if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
			t.Errorf("Point(%v, %v) = (%v, %v), want (%v, %v)", tt.angle, tt.radius, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestArcCentroid(t *testing.T) {
	center := Arc{Depth: 0, X0: 0, X1: 2 * math.Pi, Y0: 0, Y1: 50}
	if x, y := center.Centroid(); x != 0 || y != 0 {
		t.Errorf("center disk centroid = (%v, %v), want origin", x, y)
	}

	right := Arc{Depth: 1, X0: math.Pi / 4, X1: 3 * math.Pi / 4, Y0: 50, Y1: 100}
	x, y := right.Centroid()
	if math.Abs(x-75) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("centroid = (%v, %v), want (75, 0)", x, y)
	}
}
