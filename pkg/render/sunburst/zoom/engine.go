package zoom

import (
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Engine binds the zoom state machine to a layout configuration.
type Engine struct {
	Config layout.Config
}

// NewEngine returns an engine using cfg.
func NewEngine(cfg layout.Config) *Engine {
	return &Engine{Config: cfg}
}

// Render normalizes vs against t and lays out the focused subtree. The
// returned state is the normalized one.
func (e *Engine) Render(t *tree.Tree, vs ViewState) (layout.Layout, ViewState) {
	vs = Normalize(t, vs)
	focus, _ := t.Find(vs.Focus())
	return layout.Compute(focus, e.Config), vs
}
