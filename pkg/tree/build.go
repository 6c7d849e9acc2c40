package tree

import (
	"slices"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/errors"
)

var (
	// ErrNoThesis is returned by [Build] when no proposition has type
	// thesis. It matches any error with code NO_THESIS via errors.Is.
	ErrNoThesis = errors.New(errors.ErrCodeNoThesis, "no thesis node")

	// ErrEmpty is returned by [Build] for an empty proposition list.
	ErrEmpty = errors.New(errors.ErrCodeEmptyDataset, "no propositions")
)

// Build converts a flat proposition list into a tree rooted at the first
// thesis. See the package documentation for the placement rules.
func Build(nodes []argument.Proposition) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, ErrEmpty
	}

	thesis := slices.IndexFunc(nodes, argument.Proposition.IsThesis)
	if thesis < 0 {
		return nil, ErrNoThesis
	}

	byTarget := indexByTarget(nodes)
	placed := make([]bool, len(nodes))
	visited := map[argument.ID]bool{nodes[thesis].ID: true}

	root := newNode(nodes[thesis], nil, argument.Relation{})
	placed[thesis] = true
	t := &Tree{
		Root:  root,
		nodes: map[argument.ID]*Node{root.ID: root},
	}

	// Explicit stack instead of recursion; children are pushed in reverse
	// so expansion order matches a recursive pre-order walk.
	stack := []*Node{root}
	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, i := range byTarget[parent.ID] {
			p := nodes[i]
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			placed[i] = true

			rel, _ := p.RelationTo(parent.ID)
			child := newNode(p, parent, rel)
			parent.Children = append(parent.Children, child)
			t.nodes[child.ID] = child
		}

		for i := len(parent.Children) - 1; i >= 0; i-- {
			stack = append(stack, parent.Children[i])
		}
	}

	for i, p := range nodes {
		if !placed[i] {
			t.Dropped = append(t.Dropped, p.ID)
		}
	}
	return t, nil
}

// indexByTarget maps each target id to the indices of the propositions
// that relate to it, in input order. A proposition appears at most once per
// target even if it declares several relations to it.
func indexByTarget(nodes []argument.Proposition) map[argument.ID][]int {
	byTarget := make(map[argument.ID][]int)
	for i, p := range nodes {
		for j, r := range p.Relations {
			if slices.ContainsFunc(p.Relations[:j], func(prev argument.Relation) bool {
				return prev.TargetNodeID == r.TargetNodeID
			}) {
				continue
			}
			byTarget[r.TargetNodeID] = append(byTarget[r.TargetNodeID], i)
		}
	}
	return byTarget
}

func newNode(p argument.Proposition, parent *Node, rel argument.Relation) *Node {
	p.Relations = slices.Clone(p.Relations)
	n := &Node{
		Proposition:       p,
		RelationType:      rel.RelationType,
		RelationReasoning: rel.Reasoning,
		parent:            parent,
	}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}
