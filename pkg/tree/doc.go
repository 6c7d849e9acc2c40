// Package tree turns a flat list of propositions into the rooted argument
// tree that the sunburst layout draws.
//
// # Construction
//
// [Build] anchors the tree at the first thesis proposition and walks the
// relation graph outward. At each parent, the candidate children are the
// propositions that have a relation targeting the parent, taken in input
// order. A child copies the first such relation's type and reasoning; the
// root carries neither.
//
// Every id is expanded at most once. The visited set is what keeps malformed
// input (cycles, diamonds) from recursing forever, and it also means a
// proposition reachable along two paths is attached only to the parent that
// is expanded first. Propositions that cannot be reached from the thesis,
// whether their target is missing or they form a disconnected cycle, are
// left out and listed in [Tree.Dropped].
//
// # Ownership
//
// Build never mutates its input. The returned nodes are owned by the [Tree]
// and are immutable after construction; layouts are computed into separate
// values (see the sunburst/layout package) so a tree can be shared by any
// number of views.
package tree
