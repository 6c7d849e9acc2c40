package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/render/nodelink"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/sink"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// RenderArtifacts generates output artifacts in the requested formats.
// DOT output is available for both visualization types and always shows
// the focused subtree.
func RenderArtifacts(ctx context.Context, t *tree.Tree, l layout.Layout, vs zoom.ViewState, p color.Palette, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, t, vs, p, opts)
	}
	return renderSunburst(ctx, t, l, vs, p, opts)
}

func renderSunburst(ctx context.Context, t *tree.Tree, l layout.Layout, vs zoom.ViewState, p color.Palette, opts Options) (map[string][]byte, error) {
	trail := zoom.Breadcrumbs(t, vs)
	svgOpts := []sink.SVGOption{sink.WithPalette(p), sink.WithBreadcrumbs(trail)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, t, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, t,
				sink.WithJSONPalette(p),
				sink.WithJSONBreadcrumbs(trail),
				sink.WithJSONDetails())
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, t, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, t, DefaultPNGScale, svgOpts...)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(t, nodelinkOptions(vs, p, opts)))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported sunburst format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderNodelink(ctx context.Context, t *tree.Tree, vs zoom.ViewState, p color.Palette, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(t, nodelinkOptions(vs, p, opts))

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, DefaultPNGScale)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func nodelinkOptions(vs zoom.ViewState, p color.Palette, opts Options) nodelink.Options {
	return nodelink.Options{
		Palette:  &p,
		Detailed: opts.Detailed,
		Root:     vs.Focus(),
	}
}
