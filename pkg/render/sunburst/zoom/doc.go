// Package zoom implements the sunburst's zoom state machine.
//
// The state is an explicit [ViewState]: the zoom stack, an ordered path of
// node ids from the thesis to the current focus. Operations take a state
// and return a new one together with a flag reporting whether anything
// changed, so callers (the viewer, HTTP sessions, the terminal browser) own
// the state and can persist it as plain JSON.
//
// # Invariants
//
// A stack produced by this package is never empty, its first element is
// always the tree root, and every element is the tree parent of the next.
// [Normalize] restores these invariants on a state that was restored from
// elsewhere, for example a session saved against an older dataset.
//
// # Transitions
//
//   - [ZoomIn] looks the target up under the current focus only. A target
//     with children becomes the new focus; a leaf, the focus itself, or an
//     id outside the focused subtree is a no-op.
//   - [ZoomOut] pops the focus unless it is the root.
//   - [ZoomToLevel] truncates the stack to a breadcrumb index.
//   - [Click] maps a click at a layout depth onto the above: depth 0 is the
//     center disk and always zooms out.
//
// Every transition is followed by a full layout recomputation at the new
// focus via [Engine.Render]; zooming is never a viewport transform.
package zoom
