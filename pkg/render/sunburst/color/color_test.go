package color

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

func node(typ argument.NodeType, rel argument.RelationType, intensity float64) *tree.Node {
	return &tree.Node{
		Proposition:  argument.Proposition{ID: "n", Type: typ, Score: argument.Score{Intensity: intensity}},
		RelationType: rel,
	}
}

func approx(a, b colorful.Color) bool {
	const tol = 1e-9
	return math.Abs(a.R-b.R) < tol && math.Abs(a.G-b.G) < tol && math.Abs(a.B-b.B) < tol
}

func scale(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

func TestFill(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		name string
		node *tree.Node
		want colorful.Color
	}{
		{"thesis ignores intensity", node(argument.TypeThesis, "", 0.9), p.Thesis},
		{"support at zero intensity", node(argument.TypePractical, argument.RelationSupport, 0), p.Support},
		{"attack at zero intensity", node(argument.TypeFoundational, argument.RelationAttack, 0), p.Attack},
		{"support half", node(argument.TypePractical, argument.RelationSupport, 0.5), scale(p.Support, 1-0.5*p.MaxBrightnessFactor)},
		{"attack full", node(argument.TypePractical, argument.RelationAttack, 1), scale(p.Attack, 1-p.MaxBrightnessFactor)},
		{"intensity clamped high", node(argument.TypePractical, argument.RelationAttack, 7), scale(p.Attack, 1-p.MaxBrightnessFactor)},
		{"intensity clamped low", node(argument.TypePractical, argument.RelationSupport, -2), p.Support},
		{"unknown relation uses support", node(argument.TypePractical, "refute", 0), p.Support},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fill(tt.node, p); !approx(got, tt.want) {
				t.Errorf("Fill() = %v, want %v", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestFillDarkensMonotonically(t *testing.T) {
	p := DefaultPalette()
	prev := math.Inf(1)
	for _, i := range []float64{0, 0.25, 0.5, 0.75, 1} {
		l, _, _ := Fill(node(argument.TypePractical, argument.RelationSupport, i), p).Lab()
		if l >= prev {
			t.Errorf("lightness at intensity %v = %v, want below %v", i, l, prev)
		}
		prev = l
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name                    string
		thesis, support, attack string
		factor                  float64
		wantErr                 bool
	}{
		{"defaults", DefaultThesis, DefaultSupport, DefaultAttack, DefaultMaxBrightnessFactor, false},
		{"bad thesis", "gold", DefaultSupport, DefaultAttack, 0.5, true},
		{"bad attack", DefaultThesis, DefaultSupport, "#zzzzzz", 0.5, true},
		{"factor too big", DefaultThesis, DefaultSupport, DefaultAttack, 1.5, true},
		{"factor negative", DefaultThesis, DefaultSupport, DefaultAttack, -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePalette(tt.thesis, tt.support, tt.attack, tt.factor)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePalette() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHex(t *testing.T) {
	p := DefaultPalette()
	if got := Hex(node(argument.TypeThesis, "", 0), p); got != DefaultThesis {
		t.Errorf("Hex(thesis) = %s, want %s", got, DefaultThesis)
	}
}
