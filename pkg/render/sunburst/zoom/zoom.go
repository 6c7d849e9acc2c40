package zoom

import (
	"slices"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// ViewState is the serializable zoom state of one view.
type ViewState struct {
	Stack []argument.ID `json:"stack"`
}

// New returns the initial state for t: focused on the root.
func New(t *tree.Tree) ViewState {
	return ViewState{Stack: []argument.ID{t.Root.ID}}
}

// Focus returns the id at the top of the stack, or "" for an empty state.
func (vs ViewState) Focus() argument.ID {
	if len(vs.Stack) == 0 {
		return ""
	}
	return vs.Stack[len(vs.Stack)-1]
}

// Len returns the stack length.
func (vs ViewState) Len() int { return len(vs.Stack) }

// Clone returns a copy that shares no memory with vs.
func (vs ViewState) Clone() ViewState {
	return ViewState{Stack: slices.Clone(vs.Stack)}
}

// Equal reports whether both states hold the same stack.
func (vs ViewState) Equal(other ViewState) bool {
	return slices.Equal(vs.Stack, other.Stack)
}

// ZoomIn focuses on id if it lies strictly below the current focus and has
// children. The path from the focus down to id is pushed, so zooming onto a
// grandchild also pushes the intermediate node.
func ZoomIn(t *tree.Tree, vs ViewState, id argument.ID) (ViewState, bool) {
	vs = Normalize(t, vs)
	focus, _ := t.Find(vs.Focus())

	target, ok := focus.Find(id)
	if !ok || target == focus || target.IsLeaf() {
		return vs, false
	}

	path := t.Path(target.ID)
	next := vs.Clone()
	for _, n := range path[focus.Depth()+1:] {
		next.Stack = append(next.Stack, n.ID)
	}
	return next, true
}

// ZoomOut pops the focus. At the root it is a no-op.
func ZoomOut(vs ViewState) (ViewState, bool) {
	if len(vs.Stack) <= 1 {
		return vs, false
	}
	return ViewState{Stack: slices.Clone(vs.Stack[:len(vs.Stack)-1])}, true
}

// ZoomToLevel truncates the stack to [0, index]. An index outside the stack,
// or the current top, is a no-op.
func ZoomToLevel(vs ViewState, index int) (ViewState, bool) {
	if index < 0 || index >= len(vs.Stack)-1 {
		return vs, false
	}
	return ViewState{Stack: slices.Clone(vs.Stack[:index+1])}, true
}

// Click handles a click on node id drawn at depth in the current layout.
// The center disk (depth 0) zooms out; anything else zooms in.
func Click(t *tree.Tree, vs ViewState, id argument.ID, depth int) (ViewState, bool) {
	if depth == 0 {
		return ZoomOut(Normalize(t, vs))
	}
	return ZoomIn(t, vs, id)
}

// Normalize returns vs repaired against t. The stack is cut at the first
// element that is not the tree child of its predecessor; an empty stack or
// one that does not start at the root becomes [root].
func Normalize(t *tree.Tree, vs ViewState) ViewState {
	if len(vs.Stack) == 0 || vs.Stack[0] != t.Root.ID {
		return New(t)
	}
	n := 1
	for ; n < len(vs.Stack); n++ {
		parent, ok := t.Parent(vs.Stack[n])
		if !ok || parent.ID != vs.Stack[n-1] {
			break
		}
	}
	if n == len(vs.Stack) {
		return vs
	}
	return ViewState{Stack: slices.Clone(vs.Stack[:n])}
}

// Breadcrumbs returns the tree nodes of the (normalized) stack, root first.
func Breadcrumbs(t *tree.Tree, vs ViewState) []*tree.Node {
	vs = Normalize(t, vs)
	crumbs := make([]*tree.Node, 0, len(vs.Stack))
	for _, id := range vs.Stack {
		n, _ := t.Find(id)
		crumbs = append(crumbs, n)
	}
	return crumbs
}
