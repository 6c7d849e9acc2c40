package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/render"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Palette colors the boxes. The zero value uses the default palette.
	Palette *color.Palette

	// Detailed adds type, speaker and score lines to node labels.
	Detailed bool

	// Root limits the diagram to the subtree under this id. Empty means
	// the whole tree.
	Root argument.ID
}

// ToDOT converts an argument tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(t *tree.Tree, opts Options) string {
	p := color.DefaultPalette()
	if opts.Palette != nil {
		p = *opts.Palette
	}
	root := t.Root
	if opts.Root != "" {
		if n, ok := t.Find(opts.Root); ok {
			root = n
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, fontname=\"Helvetica\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root.Walk(func(n *tree.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", string(n.ID), strings.Join(nodeAttrs(n, p, opts.Detailed), ", "))
		return true
	})

	buf.WriteString("\n")
	root.Walk(func(n *tree.Node, _ int) bool {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", string(c.ID), string(n.ID), strings.Join(edgeAttrs(c), ", "))
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	title := n.Title
	if title == "" {
		title = string(n.ID)
	}
	if !detailed {
		return title
	}

	parts := []string{title, "type: " + string(n.Type)}
	if n.Speaker != "" {
		parts = append(parts, "speaker: "+n.Speaker)
	}
	if !n.IsThesis() {
		parts = append(parts, fmt.Sprintf("intensity: %.2f", n.Score.Intensity))
	}
	return strings.Join(parts, "\n")
}

func nodeAttrs(n *tree.Node, p color.Palette, detailed bool) []string {
	fill := color.Fill(n, p)
	font := "black"
	if l, _, _ := fill.Lab(); l < 0.5 {
		font = "white"
	}
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("fillcolor=%q", fill.Hex()),
		fmt.Sprintf("fontcolor=%s", font),
	}
	if n.IsThesis() {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func edgeAttrs(child *tree.Node) []string {
	if child.RelationType == argument.RelationAttack {
		return []string{"style=dashed", `color="#b03a48"`, `arrowhead=tee`}
	}
	return []string{`color="#555555"`}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a plain
// viewBox so the diagram scales like the sunburst output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
