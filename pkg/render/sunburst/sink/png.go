package sink

import (
	"context"

	"github.com/matzehuels/argwheel/pkg/render"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// RenderPNG renders the view as SVG and converts it to PNG at the given
// scale.
func RenderPNG(ctx context.Context, l layout.Layout, t *tree.Tree, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(ctx, RenderSVG(l, t, opts...), scale)
}
