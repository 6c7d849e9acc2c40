package sink

import (
	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// DrawInstruction is everything a renderer needs to draw one arc.
type DrawInstruction struct {
	NodeID   argument.ID `json:"id"`
	Depth    int         `json:"depth"`
	X0       float64     `json:"x0"`
	X1       float64     `json:"x1"`
	Y0       float64     `json:"y0"`
	Y1       float64     `json:"y1"`
	PadAngle float64     `json:"pad_angle"`
	Fill     string      `json:"fill"`
}

// Instructions returns one instruction per arc of l, in layout order. Arcs
// whose node is missing from t are skipped.
func Instructions(l layout.Layout, t *tree.Tree, p color.Palette) []DrawInstruction {
	out := make([]DrawInstruction, 0, l.Len())
	for _, a := range l.Arcs {
		n, ok := t.Find(a.NodeID)
		if !ok {
			continue
		}
		out = append(out, DrawInstruction{
			NodeID:   a.NodeID,
			Depth:    a.Depth,
			X0:       a.X0,
			X1:       a.X1,
			Y0:       a.Y0,
			Y1:       a.Y1,
			PadAngle: a.PadAngle,
			Fill:     color.Hex(n, p),
		})
	}
	return out
}
