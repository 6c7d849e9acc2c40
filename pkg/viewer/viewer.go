// Package viewer holds the interactive state of one sunburst view: the
// current dataset tree, its zoom stack, the hovered node, the frame size,
// and the layout computed from them.
//
// A [Viewer] is what the HTTP server and the terminal browser drive. Every
// interaction (hover, click, zoom out, breadcrumb selection, resize)
// updates the state and recomputes the layout synchronously, so
// [Viewer.Layout] always matches [Viewer.State].
//
// Loads are asynchronous-safe: each call to [Viewer.Load] supersedes any
// load still in flight, and a failed load keeps the previously installed
// dataset.
package viewer

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/observability"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Loader produces the tree to install. It should stop early when ctx is
// canceled.
type Loader func(ctx context.Context) (*tree.Tree, error)

// Viewer is safe for concurrent use.
type Viewer struct {
	mu sync.Mutex

	base   layout.Config
	width  float64
	height float64
	logger *log.Logger

	tree    *tree.Tree
	state   zoom.ViewState
	layout  layout.Layout
	hovered *tree.Node

	gen    uint64
	cancel context.CancelFunc
}

// Option configures a [Viewer].
type Option func(*Viewer)

// WithLayoutConfig sets the base layout geometry. Its radius is replaced
// by one that fits the frame size.
func WithLayoutConfig(cfg layout.Config) Option {
	return func(v *Viewer) { v.base = cfg }
}

// WithSize sets the initial frame size.
func WithSize(width, height float64) Option {
	return func(v *Viewer) { v.width, v.height = width, height }
}

// WithLogger sets the logger. The default is [log.Default].
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// New returns an empty viewer.
func New(opts ...Option) *Viewer {
	v := &Viewer{
		base:   layout.DefaultConfig(),
		width:  2 * layout.DefaultRadius,
		height: 2 * layout.DefaultRadius,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = log.Default()
	}
	return v
}

// Load runs load and installs its tree with a fresh zoom state. A newer
// call to Load cancels this one; a superseded load returns a CANCELED error
// and installs nothing. On failure the previous dataset stays installed.
func (v *Viewer) Load(ctx context.Context, load Loader) error {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()
	defer cancel()

	t, err := load(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		v.logger.Debug("discarding superseded load", "generation", gen)
		return errors.New(errors.ErrCodeCanceled, "load superseded")
	}
	v.cancel = nil
	if err == nil && t == nil {
		err = errors.New(errors.ErrCodeInternal, "loader returned no tree")
	}
	if err != nil {
		v.logger.Warn("load failed, keeping current dataset", "error", err)
		return err
	}
	v.install(t, zoom.ViewState{})
	return nil
}

// Install replaces the dataset synchronously. vs is normalized against t;
// an empty vs starts at the thesis. Install supersedes pending loads.
func (v *Viewer) Install(t *tree.Tree, vs zoom.ViewState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.gen++
	v.install(t, vs)
}

func (v *Viewer) install(t *tree.Tree, vs zoom.ViewState) {
	v.tree = t
	v.hovered = nil
	v.state = vs
	v.relayout()
	v.logger.Debug("installed dataset", "nodes", t.Len(), "focus", v.state.Focus())
}

// relayout recomputes the layout for the current state and size. The
// caller holds mu.
func (v *Viewer) relayout() {
	cfg := v.base.WithRadius(v.width, v.height)
	v.layout, v.state = zoom.NewEngine(cfg).Render(v.tree, v.state)
	if v.hovered != nil {
		if _, ok := v.layout.Arc(v.hovered.ID); !ok {
			v.hovered = nil
		}
	}
}

// transition applies a zoom result. The caller holds mu.
func (v *Viewer) transition(next zoom.ViewState, ok bool) bool {
	if !ok {
		return false
	}
	from := v.state.Focus()
	v.state = next
	v.relayout()
	observability.Zoom().OnZoom(context.Background(), string(from), string(v.state.Focus()), v.state.Len())
	return true
}

// Hover marks the node as hovered. Only nodes drawn in the current layout
// can be hovered; anything else is ignored and reported as false.
func (v *Viewer) Hover(id argument.ID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return false
	}
	if _, ok := v.layout.Arc(id); !ok {
		return false
	}
	v.hovered, _ = v.tree.Find(id)
	return true
}

// MouseOut clears the hovered node.
func (v *Viewer) MouseOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hovered = nil
}

// Hovered returns the hovered node, or nil.
func (v *Viewer) Hovered() *tree.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hovered
}

// Click handles a click on the node drawn at depth. It reports whether the
// zoom state changed.
func (v *Viewer) Click(id argument.ID, depth int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return false
	}
	return v.transition(zoom.Click(v.tree, v.state, id, depth))
}

// ZoomOut pops one zoom level.
func (v *Viewer) ZoomOut() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return false
	}
	return v.transition(zoom.ZoomOut(v.state))
}

// ZoomToLevel jumps to breadcrumb index.
func (v *Viewer) ZoomToLevel(index int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return false
	}
	return v.transition(zoom.ZoomToLevel(v.state, index))
}

// Resize changes the frame size and recomputes the layout for the current
// focus. Non-positive sizes are ignored.
func (v *Viewer) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = width, height
	if v.tree != nil {
		v.relayout()
	}
	return true
}

// Size returns the frame size.
func (v *Viewer) Size() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Layout returns the current layout. It is the zero Layout before the
// first successful load.
func (v *Viewer) Layout() layout.Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// State returns a copy of the zoom state.
func (v *Viewer) State() zoom.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

// Tree returns the installed tree, or nil.
func (v *Viewer) Tree() *tree.Tree {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tree
}

// Breadcrumbs returns the nodes of the zoom stack, thesis first.
func (v *Viewer) Breadcrumbs() []*tree.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return nil
	}
	return zoom.Breadcrumbs(v.tree, v.state)
}

// Focus returns the node at the center of the view, or nil.
func (v *Viewer) Focus() *tree.Node {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tree == nil {
		return nil
	}
	n, _ := v.tree.Find(v.state.Focus())
	return n
}
