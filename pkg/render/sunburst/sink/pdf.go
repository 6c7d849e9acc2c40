package sink

import (
	"context"

	"github.com/matzehuels/argwheel/pkg/render"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// RenderPDF renders the view as SVG and converts it to PDF.
func RenderPDF(ctx context.Context, l layout.Layout, t *tree.Tree, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(l, t, opts...))
}
