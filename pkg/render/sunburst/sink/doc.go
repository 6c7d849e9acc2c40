// Package sink writes sunburst layouts to output formats.
//
// # Draw Instructions
//
// [Instructions] is the render boundary: one [DrawInstruction] per arc,
// carrying angular bounds, radial bounds, padding, the node reference and
// the fill color. Every format in this package is built from it, and
// clients that draw the chart themselves (the HTTP API, a browser) consume
// it directly through [RenderJSON].
//
// # SVG
//
// [RenderSVG] draws each arc as an annular sector path centered on the
// origin. Paths carry data-id and data-depth attributes and a class per
// relation type, so an embedding page can wire hover and click handlers
// back to the viewer. Labels and a breadcrumb trail are optional:
//
//	svg := sink.RenderSVG(l, t,
//	    sink.WithPalette(p),
//	    sink.WithLabels(),
//	    sink.WithBreadcrumbs(zoom.Breadcrumbs(t, vs)),
//	)
//
// # PDF and PNG
//
// [RenderPDF] and [RenderPNG] render SVG and convert it with rsvg-convert
// (see the render package).
package sink
