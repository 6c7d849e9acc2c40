// Package layout computes the radial geometry of an argument tree.
//
// # Overview
//
// [Compute] places every node of a (sub)tree on a sunburst: the root is the
// center disk, each following depth is a concentric ring, and each node
// occupies an annular sector ([Arc]) of its ring.
//
// # Angular Assignment
//
// The root receives the full circle [0, 2π). A node's angular span is cut
// into k equal contiguous slices for its k children, in child order. Only
// the sibling count matters; scores and subtree sizes never weight the
// split. The last child's end angle is the parent's end angle exactly, so
// slices partition the parent without floating-point gaps.
//
// # Radial Assignment
//
// With R the outer radius and D the maximum depth of the subtree, depth d
// spans the linear band [d·R/(D+1), (d+1)·R/(D+1)). Band boundaries are then
// warped by
//
//	warp(y) = (y/R)^e · R,   e = BaseExponent + (D - DepthThreshold) · PerLevelIncrement
//
// Deeper trees get a larger exponent, which compresses inner rings and
// leaves room for the outer leaf rings. A gap of VerticalGap·R is added to
// each inner boundary and subtracted from each outer boundary to separate
// rings visually. The center disk always starts at radius 0.
//
// # Padding
//
// Arcs carry a padding angle interpolated linearly from InnerPadding at
// depth 0 to OuterPadding at depth D. For a single-node tree (D = 0) the
// padding is InnerPadding.
//
// # Determinism
//
// Compute is a pure function of the subtree shape and the [Config]. It does
// not mutate the tree and keeps no state between calls, so recomputing a
// layout for the same subtree yields identical arcs. Zooming re-runs
// Compute at a different root; D, and therefore the exponent and padding,
// change with it.
package layout
