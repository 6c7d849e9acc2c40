package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

const (
	frameMargin     = 20.0
	breadcrumbBand  = 28.0
	fontFamily      = "Helvetica, Arial, sans-serif"
	minLabelArc     = 36.0 // arc length at mid radius
	minLabelRing    = 12.0
	maxLabelRunes   = 24
	centerLabelRune = 32
)

const arcInteractionCSS = `
    .arc { stroke: #fff; stroke-width: 1; transition: opacity 0.15s ease; cursor: pointer; }
    .arc.dim { opacity: 0.45; }
    .arc-label, .center-label { pointer-events: none; }
    .crumb { cursor: pointer; }`

const arcInteractionJS = `
    document.querySelectorAll('.arc').forEach(el => {
      el.addEventListener('mouseenter', () => {
        document.querySelectorAll('.arc').forEach(a => a.classList.toggle('dim', a !== el));
      });
      el.addEventListener('mouseleave', () => {
        document.querySelectorAll('.arc').forEach(a => a.classList.remove('dim'));
      });
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette     color.Palette
	width       float64
	height      float64
	labels      bool
	breadcrumbs []*tree.Node
}

// WithPalette sets the fill palette. The default is [color.DefaultPalette].
func WithPalette(p color.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithSize sets the frame size. The default fits the layout radius plus a
// margin.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithLabels draws node titles on arcs wide enough to hold them.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithBreadcrumbs draws the zoom trail above the chart.
func WithBreadcrumbs(trail []*tree.Node) SVGOption {
	return func(r *svgRenderer) { r.breadcrumbs = trail }
}

// RenderSVG draws l as a standalone SVG document. Node titles and types
// come from t.
func RenderSVG(l layout.Layout, t *tree.Tree, opts ...SVGOption) []byte {
	r := svgRenderer{palette: color.DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		side := 2 * (l.Radius + frameMargin)
		r.width, r.height = side, side
	}

	top := -r.height / 2
	total := r.height
	if len(r.breadcrumbs) > 0 {
		top -= breadcrumbBand
		total += breadcrumbBand
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-r.width/2, top, r.width, total, r.width, total)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", arcInteractionCSS)

	if len(r.breadcrumbs) > 0 {
		renderBreadcrumbs(&buf, r.breadcrumbs, -r.width/2+frameMargin/2, top+breadcrumbBand*0.65)
	}

	buf.WriteString(`  <g class="sunburst">` + "\n")
	for _, a := range l.Arcs {
		n, ok := t.Find(a.NodeID)
		if !ok {
			continue
		}
		renderArc(&buf, a, n, color.Hex(n, r.palette))
	}
	if r.labels {
		for _, a := range l.Arcs {
			if n, ok := t.Find(a.NodeID); ok {
				renderLabel(&buf, a, n)
			}
		}
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", arcInteractionJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderArc(buf *bytes.Buffer, a layout.Arc, n *tree.Node, fill string) {
	class := "arc"
	if n.IsThesis() {
		class += " thesis"
	} else if n.RelationType != "" {
		class += " " + string(n.RelationType)
	}

	rule := ""
	if a.IsFullCircle() && a.Y0 > 0 {
		rule = ` fill-rule="evenodd"`
	}
	fmt.Fprintf(buf, `    <path class="%s" d="%s" fill="%s"%s data-id="%s" data-depth="%d">`,
		class, ArcPath(a), fill, rule, escapeXML(string(n.ID)), a.Depth)
	fmt.Fprintf(buf, "<title>%s</title></path>\n", escapeXML(tooltip(n)))
}

// ArcPath returns the SVG path data of an annular sector, padded.
func ArcPath(a layout.Arc) string {
	r0, r1 := a.Y0, a.Y1
	if a.IsFullCircle() {
		if r0 <= 0 {
			return circlePath(r1, 1)
		}
		return circlePath(r1, 1) + " " + circlePath(r0, 0)
	}

	a0, a1 := a.StartAngle(), a.EndAngle()
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}

	var sb strings.Builder
	x, y := layout.Point(a0, r1)
	fmt.Fprintf(&sb, "M%.3f,%.3f", x, y)
	x, y = layout.Point(a1, r1)
	fmt.Fprintf(&sb, "A%.3f,%.3f 0 %d 1 %.3f,%.3f", r1, r1, large, x, y)
	if r0 > 0 {
		x, y = layout.Point(a1, r0)
		fmt.Fprintf(&sb, "L%.3f,%.3f", x, y)
		x, y = layout.Point(a0, r0)
		fmt.Fprintf(&sb, "A%.3f,%.3f 0 %d 0 %.3f,%.3f", r0, r0, large, x, y)
	} else {
		sb.WriteString("L0,0")
	}
	sb.WriteString("Z")
	return sb.String()
}

// circlePath draws a full circle as two half arcs.
func circlePath(r float64, sweep int) string {
	return fmt.Sprintf("M0,%.3fA%.3f,%.3f 0 1 %d 0,%.3fA%.3f,%.3f 0 1 %d 0,%.3fZ",
		-r, r, r, sweep, r, r, r, sweep, -r)
}

func renderLabel(buf *bytes.Buffer, a layout.Arc, n *tree.Node) {
	title := displayTitle(n)
	if a.Depth == 0 {
		fmt.Fprintf(buf, `    <text class="center-label" x="0" y="0" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="14" font-weight="bold">%s</text>`+"\n",
			fontFamily, escapeXML(truncate(title, centerLabelRune)))
		return
	}
	if a.Sweep()*a.MidRadius() < minLabelArc || a.Thickness() < minLabelRing {
		return
	}

	x, y := a.Centroid()
	rot := a.MidAngle()*180/math.Pi - 90
	if a.MidAngle() > math.Pi {
		rot += 180
	}
	fmt.Fprintf(buf, `    <text class="arc-label" x="%.2f" y="%.2f" transform="rotate(%.2f %.2f %.2f)" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="10" fill="#fff">%s</text>`+"\n",
		x, y, rot, x, y, fontFamily, escapeXML(truncate(title, maxLabelRunes)))
}

func renderBreadcrumbs(buf *bytes.Buffer, trail []*tree.Node, x, y float64) {
	buf.WriteString(`  <g class="breadcrumbs">` + "\n")
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="13">`, x, y, fontFamily)
	for i, n := range trail {
		if i > 0 {
			buf.WriteString(`<tspan fill="#999"> › </tspan>`)
		}
		weight := "normal"
		if i == len(trail)-1 {
			weight = "bold"
		}
		fmt.Fprintf(buf, `<tspan class="crumb" data-level="%d" font-weight="%s">%s</tspan>`,
			i, weight, escapeXML(truncate(displayTitle(n), maxLabelRunes)))
	}
	buf.WriteString("</text>\n  </g>\n")
}

func displayTitle(n *tree.Node) string {
	if n.Title != "" {
		return n.Title
	}
	return string(n.ID)
}

func tooltip(n *tree.Node) string {
	var sb strings.Builder
	sb.WriteString(displayTitle(n))
	if n.RelationType != "" {
		fmt.Fprintf(&sb, " (%s)", n.RelationType)
	}
	if n.Speaker != "" {
		fmt.Fprintf(&sb, "\n%s", n.Speaker)
	}
	if n.Description != "" {
		fmt.Fprintf(&sb, "\n%s", n.Description)
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
