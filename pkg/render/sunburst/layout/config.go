package layout

import (
	"fmt"
	"math"
)

// Config holds the geometry constants of the sunburst.
type Config struct {
	// Radius is the outer radius R of the chart in user units.
	Radius float64 `toml:"radius" json:"radius"`

	// BaseExponent, DepthThreshold and PerLevelIncrement define the warp
	// exponent: BaseExponent + (maxDepth-DepthThreshold)*PerLevelIncrement.
	BaseExponent      float64 `toml:"base_exponent" json:"base_exponent"`
	DepthThreshold    int     `toml:"depth_threshold" json:"depth_threshold"`
	PerLevelIncrement float64 `toml:"per_level_increment" json:"per_level_increment"`

	// MinExponent bounds the exponent from below for trees shallower than
	// DepthThreshold.
	MinExponent float64 `toml:"min_exponent" json:"min_exponent"`

	// VerticalGap is the radial gap at each ring boundary, as a fraction of R.
	VerticalGap float64 `toml:"vertical_gap" json:"vertical_gap"`

	// InnerPadding and OuterPadding are the padding angles (radians) at
	// depth 0 and at the maximum depth.
	InnerPadding float64 `toml:"inner_padding" json:"inner_padding"`
	OuterPadding float64 `toml:"outer_padding" json:"outer_padding"`
}

// Default geometry constants.
const (
	DefaultRadius            = 300.0
	DefaultBaseExponent      = 1.0
	DefaultDepthThreshold    = 2
	DefaultPerLevelIncrement = 0.15
	DefaultMinExponent       = 0.5
	DefaultVerticalGap       = 0.004
	DefaultInnerPadding      = 0.02
	DefaultOuterPadding      = 0.004
)

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{
		Radius:            DefaultRadius,
		BaseExponent:      DefaultBaseExponent,
		DepthThreshold:    DefaultDepthThreshold,
		PerLevelIncrement: DefaultPerLevelIncrement,
		MinExponent:       DefaultMinExponent,
		VerticalGap:       DefaultVerticalGap,
		InnerPadding:      DefaultInnerPadding,
		OuterPadding:      DefaultOuterPadding,
	}
}

// WithRadius returns a copy of c with the radius set to fit a frame of the
// given size.
func (c Config) WithRadius(width, height float64) Config {
	c.Radius = min(width, height) / 2
	return c
}

// Validate reports configuration values that would produce broken geometry.
func (c Config) Validate() error {
	switch {
	case !(c.Radius > 0) || math.IsInf(c.Radius, 0):
		return fmt.Errorf("radius must be positive, got %g", c.Radius)
	case !(c.MinExponent > 0):
		return fmt.Errorf("min_exponent must be positive, got %g", c.MinExponent)
	case c.VerticalGap < 0 || c.VerticalGap >= 0.5:
		return fmt.Errorf("vertical_gap must be in [0, 0.5), got %g", c.VerticalGap)
	case c.InnerPadding < 0 || c.OuterPadding < 0:
		return fmt.Errorf("padding angles must not be negative")
	case c.InnerPadding >= math.Pi || c.OuterPadding >= math.Pi:
		return fmt.Errorf("padding angles must be smaller than π")
	}
	return nil
}

// Exponent returns the warp exponent for a subtree of the given max depth.
func (c Config) Exponent(maxDepth int) float64 {
	e := c.BaseExponent + float64(maxDepth-c.DepthThreshold)*c.PerLevelIncrement
	return max(e, c.MinExponent)
}

// PadAngle returns the padding angle for an arc at depth within a subtree
// of the given max depth.
func (c Config) PadAngle(depth, maxDepth int) float64 {
	if maxDepth == 0 {
		return c.InnerPadding
	}
	frac := float64(depth) / float64(maxDepth)
	return c.InnerPadding + (c.OuterPadding-c.InnerPadding)*frac
}

// Warp maps a linear radius y in [0, R] onto the warped scale.
func Warp(y, radius, exponent float64) float64 {
	if y <= 0 {
		return 0
	}
	return math.Pow(y/radius, exponent) * radius
}
