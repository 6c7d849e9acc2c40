// Package pkg holds the argwheel libraries.
//
// # Overview
//
// Argwheel draws a debate as a sunburst: the thesis is the center disk and
// every proposition that supports or attacks another sits in the ring
// outside its target. Clicking an arc makes it the new center.
//
// # Layout
//
//   - [argument]: the dataset model (propositions, relations, scores)
//   - [tree]: the argument tree built from a dataset
//   - [render]: sunburst geometry, zoom state, colors and sinks, plus a
//     Graphviz node-link export
//   - [viewer]: the interactive state of one open dataset
//   - [pipeline]: load, layout and render with caching
//   - [cache], [session]: file, redis and in-memory stores
//   - [config], [errors], [observability], [buildinfo]: shared plumbing
//   - [manifest], [httputil]: dataset discovery on disk and over HTTP
//
// # Data Flow
//
//	dataset.json ─▶ argument.Dataset ─▶ tree.Tree
//	                                      │
//	                   zoom.ViewState ───▶ layout.Layout ─▶ SVG / JSON / PDF / PNG
package pkg
