package layout

import (
	"math"

	"github.com/matzehuels/argwheel/pkg/argument"
)

// Arc is the annular sector a node occupies. Angles are radians measured
// clockwise from 12 o'clock; radii are in user units from the center.
type Arc struct {
	NodeID   argument.ID
	Depth    int     // depth relative to the layout root
	X0, X1   float64 // angular span [X0, X1), unpadded
	Y0, Y1   float64 // inner and outer radius after warp and gap
	PadAngle float64 // padding angle applied by StartAngle/EndAngle
}

// Sweep returns the angular width of the arc.
func (a Arc) Sweep() float64 { return a.X1 - a.X0 }

// Thickness returns the radial width of the arc.
func (a Arc) Thickness() float64 { return a.Y1 - a.Y0 }

// MidAngle returns the angle halfway through the span.
func (a Arc) MidAngle() float64 { return (a.X0 + a.X1) / 2 }

// MidRadius returns the radius halfway through the ring.
func (a Arc) MidRadius() float64 { return (a.Y0 + a.Y1) / 2 }

// IsFullCircle reports whether the arc spans the whole circle.
func (a Arc) IsFullCircle() bool { return a.Sweep() >= 2*math.Pi-1e-9 }

// StartAngle returns X0 shifted by half the padding angle. Padding never
// exceeds the sweep; an arc narrower than its padding collapses to its
// mid angle.
func (a Arc) StartAngle() float64 {
	if a.IsFullCircle() {
		return a.X0
	}
	return a.X0 + min(a.PadAngle, a.Sweep())/2
}

// EndAngle returns X1 shifted back by half the padding angle.
func (a Arc) EndAngle() float64 {
	if a.IsFullCircle() {
		return a.X1
	}
	return a.X1 - min(a.PadAngle, a.Sweep())/2
}

// Point converts a polar position (angle clockwise from 12 o'clock,
// radius) into cartesian coordinates centered on the chart, y pointing down.
func Point(angle, radius float64) (x, y float64) {
	return radius * math.Sin(angle), -radius * math.Cos(angle)
}

// Centroid returns the cartesian midpoint of the arc, suitable for labels.
func (a Arc) Centroid() (x, y float64) {
	if a.Depth == 0 && a.Y0 == 0 {
		return 0, 0
	}
	return Point(a.MidAngle(), a.MidRadius())
}

// Contains reports whether the polar position falls inside the arc's
// unpadded bounds.
func (a Arc) Contains(angle, radius float64) bool {
	return angle >= a.X0 && angle < a.X1 && radius >= a.Y0 && radius < a.Y1
}
