// Package nodelink renders argument trees as node-link diagrams.
//
// # Overview
//
// This is the conventional alternative to the sunburst: propositions are
// boxes, relations are arrows from each premise to the claim it supports or
// attacks. Layout is delegated to Graphviz.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(t, nodelink.Options{Palette: color.DefaultPalette()})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Styling
//
// Boxes are filled with the same colors as the sunburst arcs. Support edges
// are solid, attack edges dashed and red-tinted. Edges point from child to
// parent, matching the direction of relations in the dataset; rankdir=BT
// puts the thesis on top.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
