// Package color derives arc fill colors from argument tree nodes.
//
// The thesis uses a fixed hue and ignores its score. Every other node takes
// the support or attack hue of the relation that attached it to its parent,
// darkened toward black by intensity * MaxBrightnessFactor. Fill is a pure
// function of the node and the palette.
package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Default palette colors.
const (
	DefaultThesis              = "#f2c14e"
	DefaultSupport             = "#3fa34d"
	DefaultAttack              = "#d1495b"
	DefaultMaxBrightnessFactor = 0.6
)

var black = colorful.Color{}

// Palette holds the base hues and the darkening factor.
type Palette struct {
	Thesis  colorful.Color
	Support colorful.Color
	Attack  colorful.Color

	// MaxBrightnessFactor is how far toward black a node of intensity 1 is
	// pushed, in [0, 1].
	MaxBrightnessFactor float64
}

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	p, _ := ParsePalette(DefaultThesis, DefaultSupport, DefaultAttack, DefaultMaxBrightnessFactor)
	return p
}

// ParsePalette builds a palette from "#rrggbb" hex strings.
func ParsePalette(thesis, support, attack string, factor float64) (Palette, error) {
	var p Palette
	var err error
	if p.Thesis, err = colorful.Hex(thesis); err != nil {
		return Palette{}, fmt.Errorf("thesis color %q: %w", thesis, err)
	}
	if p.Support, err = colorful.Hex(support); err != nil {
		return Palette{}, fmt.Errorf("support color %q: %w", support, err)
	}
	if p.Attack, err = colorful.Hex(attack); err != nil {
		return Palette{}, fmt.Errorf("attack color %q: %w", attack, err)
	}
	if factor < 0 || factor > 1 {
		return Palette{}, fmt.Errorf("max brightness factor must be in [0, 1], got %g", factor)
	}
	p.MaxBrightnessFactor = factor
	return p, nil
}

// Base returns the undarkened hue for a node.
func (p Palette) Base(n *tree.Node) colorful.Color {
	switch {
	case n.IsThesis():
		return p.Thesis
	case n.RelationType == argument.RelationAttack:
		return p.Attack
	default:
		return p.Support
	}
}

// Fill returns the fill color of n.
func Fill(n *tree.Node, p Palette) colorful.Color {
	base := p.Base(n)
	if n.IsThesis() {
		return base
	}
	intensity := min(max(n.Score.Intensity, 0), 1)
	return base.BlendRgb(black, intensity*p.MaxBrightnessFactor).Clamped()
}

// Hex returns [Fill] as a "#rrggbb" string.
func Hex(n *tree.Node, p Palette) string {
	return Fill(n, p).Hex()
}
