package layout

import (
	"math"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

const eps = 1e-9

// Layout is the computed geometry of one subtree.
type Layout struct {
	Root     argument.ID // id of the node drawn as the center disk
	MaxDepth int         // depth of the deepest node relative to Root
	Exponent float64     // warp exponent used for the rings
	Radius   float64     // outer radius R
	Arcs     []Arc       // one per subtree node, in pre-order

	index map[argument.ID]int
}

// Arc returns the arc of the node with the given id.
func (l Layout) Arc(id argument.ID) (Arc, bool) {
	if l.index == nil {
		for _, a := range l.Arcs {
			if a.NodeID == id {
				return a, true
			}
		}
		return Arc{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Arc{}, false
	}
	return l.Arcs[i], true
}

// Len returns the number of arcs.
func (l Layout) Len() int { return len(l.Arcs) }

// HitTest returns the arc under the cartesian point (x, y), relative to the
// chart center with y pointing down.
func (l Layout) HitTest(x, y float64) (Arc, bool) {
	radius := math.Hypot(x, y)
	angle := math.Atan2(x, -y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	for _, a := range l.Arcs {
		if a.Contains(angle, radius) {
			return a, true
		}
	}
	return Arc{}, false
}

// Compute lays out the subtree rooted at root. The tree is not modified.
func Compute(root *tree.Node, cfg Config) Layout {
	maxDepth := root.MaxDepth()
	exp := cfg.Exponent(maxDepth)
	R := cfg.Radius
	gap := cfg.VerticalGap * R
	band := R / float64(maxDepth+1)

	l := Layout{
		Root:     root.ID,
		MaxDepth: maxDepth,
		Exponent: exp,
		Radius:   R,
		Arcs:     make([]Arc, 0, root.Size()),
		index:    make(map[argument.ID]int),
	}

	type item struct {
		node   *tree.Node
		depth  int
		x0, x1 float64
	}
	stack := []item{{root, 0, 0, 2 * math.Pi}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		y0, y1 := ringBounds(it.depth, band, R, exp, gap)
		l.index[it.node.ID] = len(l.Arcs)
		l.Arcs = append(l.Arcs, Arc{
			NodeID:   it.node.ID,
			Depth:    it.depth,
			X0:       it.x0,
			X1:       it.x1,
			Y0:       y0,
			Y1:       y1,
			PadAngle: cfg.PadAngle(it.depth, maxDepth),
		})

		kids := it.node.Children
		if len(kids) == 0 {
			continue
		}
		share := (it.x1 - it.x0) / float64(len(kids))
		for i := len(kids) - 1; i >= 0; i-- {
			x0 := it.x0 + float64(i)*share
			x1 := it.x0 + float64(i+1)*share
			if i == len(kids)-1 {
				x1 = it.x1
			}
			stack = append(stack, item{kids[i], it.depth + 1, x0, x1})
		}
	}
	return l
}

// ringBounds returns the warped inner and outer radius of a depth's ring.
func ringBounds(depth int, band, radius, exp, gap float64) (float64, float64) {
	inner := 0.0
	if depth > 0 {
		inner = Warp(float64(depth)*band, radius, exp) + gap
	}
	outer := Warp(float64(depth+1)*band, radius, exp) - gap
	if outer < inner+eps {
		outer = inner
	}
	return inner, outer
}
