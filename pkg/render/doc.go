// Package render turns argument trees into visual output.
//
// # Overview
//
// Two visualizations are provided:
//
//   - [sunburst]: the radial argument map. The thesis is the center disk,
//     each depth is a ring, and siblings split their parent's angle equally.
//     Subpackages compute the geometry ([sunburst/layout]), manage zoom
//     state ([sunburst/zoom]), derive colors ([sunburst/color]) and write
//     SVG or JSON ([sunburst/sink]).
//   - [nodelink]: a Graphviz node-link diagram of the same tree.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both visualizations use them:
//
//	svg := sink.RenderSVG(l, t)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [CanConvert] reports whether the tool is installed. Without it, PDF and PNG
// requests fail with an UNSUPPORTED error.
package render
