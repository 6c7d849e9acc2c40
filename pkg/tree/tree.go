package tree

import (
	"github.com/matzehuels/argwheel/pkg/argument"
)

// Node is a proposition placed in the argument tree.
//
// The embedded proposition is a copy of the input; RelationType and
// RelationReasoning come from the relation that attached the node to its
// parent and are empty on the root.
type Node struct {
	argument.Proposition

	RelationType      argument.RelationType
	RelationReasoning string
	Children          []*Node

	parent *Node
	depth  int
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Depth returns the distance from the tree root (root is 0).
func (n *Node) Depth() int { return n.depth }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in pre-order. The depth passed to fn is
// relative to n. Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := []item{{n, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// Find searches the subtree rooted at n (n included) for id.
func (n *Node) Find(id argument.ID) (*Node, bool) {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// MaxDepth returns the depth of the deepest descendant of n, relative to n.
// A leaf has max depth 0.
func (n *Node) MaxDepth() int {
	maxDepth := 0
	n.Walk(func(_ *Node, depth int) bool {
		maxDepth = max(maxDepth, depth)
		return true
	})
	return maxDepth
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Tree is the result of [Build].
type Tree struct {
	// Root is the thesis node.
	Root *Node

	// Dropped lists, in input order, the ids of input propositions that
	// were not placed: unreachable nodes, nodes whose relations point at
	// unknown ids, and duplicate ids after the first occurrence.
	Dropped []argument.ID

	nodes map[argument.ID]*Node
}

// Find returns the placed node with the given id.
func (t *Tree) Find(id argument.ID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Parent returns the parent of the node with the given id. It returns false
// for the root and for unknown ids.
func (t *Tree) Parent(id argument.ID) (*Node, bool) {
	n, ok := t.nodes[id]
	if !ok || n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

// Len returns the number of placed nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// MaxDepth returns the depth of the deepest node in the tree.
func (t *Tree) MaxDepth() int { return t.Root.MaxDepth() }

// Path returns the nodes from the root to id, both included. It returns nil
// if id is not in the tree.
func (t *Tree) Path(id argument.ID) []*Node {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	path := make([]*Node, n.depth+1)
	for ; n != nil; n = n.parent {
		path[n.depth] = n
	}
	return path
}

// IsAncestor reports whether a is b or an ancestor of b.
func IsAncestor(a, b *Node) bool {
	for n := b; n != nil; n = n.parent {
		if n == a {
			return true
		}
	}
	return false
}
