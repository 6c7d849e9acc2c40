package sink

import (
	"encoding/json"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette     color.Palette
	breadcrumbs []*tree.Node
	details     bool
}

// WithJSONPalette sets the palette used for fill colors.
func WithJSONPalette(p color.Palette) JSONOption { return func(r *jsonRenderer) { r.palette = p } }

// WithJSONBreadcrumbs records the zoom trail.
func WithJSONBreadcrumbs(trail []*tree.Node) JSONOption {
	return func(r *jsonRenderer) { r.breadcrumbs = trail }
}

// WithJSONDetails adds title, type and relation to every arc, enough for a
// client to show tooltips without a second request.
func WithJSONDetails() JSONOption { return func(r *jsonRenderer) { r.details = true } }

// Document is the JSON form of a rendered view.
type Document struct {
	Root        argument.ID  `json:"root"`
	MaxDepth    int          `json:"max_depth"`
	Exponent    float64      `json:"exponent"`
	Radius      float64      `json:"radius"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs,omitempty"`
	Arcs        []JSONArc    `json:"arcs"`
}

// Breadcrumb is one zoom stack level.
type Breadcrumb struct {
	Level int         `json:"level"`
	ID    argument.ID `json:"id"`
	Title string      `json:"title"`
}

// JSONArc is a draw instruction with optional node details.
type JSONArc struct {
	DrawInstruction
	Title        string                `json:"title,omitempty"`
	Type         argument.NodeType     `json:"type,omitempty"`
	RelationType argument.RelationType `json:"relation_type,omitempty"`
	HasChildren  bool                  `json:"has_children,omitempty"`
}

// NewDocument builds the JSON document without encoding it.
func NewDocument(l layout.Layout, t *tree.Tree, opts ...JSONOption) Document {
	r := jsonRenderer{palette: color.DefaultPalette()}
	for _, opt := range opts {
		opt(&r)
	}

	doc := Document{
		Root:     l.Root,
		MaxDepth: l.MaxDepth,
		Exponent: l.Exponent,
		Radius:   l.Radius,
	}
	for i, n := range r.breadcrumbs {
		doc.Breadcrumbs = append(doc.Breadcrumbs, Breadcrumb{Level: i, ID: n.ID, Title: displayTitle(n)})
	}

	instr := Instructions(l, t, r.palette)
	doc.Arcs = make([]JSONArc, 0, len(instr))
	for _, in := range instr {
		arc := JSONArc{DrawInstruction: in}
		if r.details {
			n, _ := t.Find(in.NodeID)
			arc.Title = displayTitle(n)
			arc.Type = n.Type
			arc.RelationType = n.RelationType
			arc.HasChildren = !n.IsLeaf()
		}
		doc.Arcs = append(doc.Arcs, arc)
	}
	return doc
}

// RenderJSON exports the view as a pretty-printed JSON document. It does not
// modify l or t and is safe to call concurrently.
func RenderJSON(l layout.Layout, t *tree.Tree, opts ...JSONOption) ([]byte, error) {
	return json.MarshalIndent(NewDocument(l, t, opts...), "", "  ")
}
