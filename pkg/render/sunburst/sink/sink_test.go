package sink

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/tree"
)

func sampleTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]argument.Proposition{
		{ID: "T", Type: argument.TypeThesis, Title: "Cities should ban cars"},
		{ID: "A", Title: "Cleaner <air> & quiet", Score: argument.Score{Intensity: 0.8},
			Relations: []argument.Relation{{TargetNodeID: "T", RelationType: argument.RelationSupport}}},
		{ID: "B", Title: "Deliveries get harder",
			Relations: []argument.Relation{{TargetNodeID: "T", RelationType: argument.RelationAttack}}},
		{ID: "B1", Title: "Cargo bikes",
			Relations: []argument.Relation{{TargetNodeID: "B", RelationType: argument.RelationAttack}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestInstructions(t *testing.T) {
	tr := sampleTree(t)
	l := layout.Compute(tr.Root, layout.DefaultConfig())
	p := color.DefaultPalette()

	got := Instructions(l, tr, p)
	if len(got) != l.Len() {
		t.Fatalf("len = %d, want %d", len(got), l.Len())
	}
	for i, in := range got {
		a := l.Arcs[i]
		if in.NodeID != a.NodeID || in.X0 != a.X0 || in.X1 != a.X1 || in.Y0 != a.Y0 || in.Y1 != a.Y1 || in.PadAngle != a.PadAngle {
			t.Errorf("instruction %d = %+v does not match arc %+v", i, in, a)
		}
		n, _ := tr.Find(in.NodeID)
		if in.Fill != color.Hex(n, p) {
			t.Errorf("%s fill = %s, want %s", in.NodeID, in.Fill, color.Hex(n, p))
		}
	}
	if got[0].Fill != color.DefaultThesis {
		t.Errorf("thesis fill = %s, want %s", got[0].Fill, color.DefaultThesis)
	}
}

func TestRenderSVG(t *testing.T) {
	tr := sampleTree(t)
	l := layout.Compute(tr.Root, layout.DefaultConfig())

	svg := string(RenderSVG(l, tr, WithLabels(), WithBreadcrumbs([]*tree.Node{tr.Root})))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not an svg document")
	}
	if got := strings.Count(svg, `<path class="arc`); got != 4 {
		t.Errorf("arc paths = %d, want 4", got)
	}
	for _, want := range []string{
		`data-id="B1"`,
		`data-depth="2"`,
		`class="arc attack"`,
		`class="arc thesis"`,
		`class="breadcrumbs"`,
		`Cleaner &lt;air&gt; &amp; quiet`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	// Must be well-formed XML.
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		if _, err := dec.Token(); err != nil {
			if err != io.EOF {
				t.Fatalf("invalid XML: %v", err)
			}
			break
		}
	}
}

func TestRenderSVGSize(t *testing.T) {
	tr := sampleTree(t)
	l := layout.Compute(tr.Root, layout.DefaultConfig())

	svg := string(RenderSVG(l, tr))
	if !strings.Contains(svg, `width="640" height="640"`) {
		t.Errorf("default frame should be 2*(R+margin); got %s", svg[:120])
	}

	svg = string(RenderSVG(l, tr, WithSize(800, 600)))
	if !strings.Contains(svg, `viewBox="-400.0 -300.0 800.0 600.0"`) {
		t.Errorf("WithSize viewBox missing; got %s", svg[:120])
	}
}

func TestArcPath(t *testing.T) {
	tests := []struct {
		name string
		arc  layout.Arc
		want []string
	}{
		{
			name: "center disk",
			arc:  layout.Arc{X0: 0, X1: 2 * math.Pi, Y0: 0, Y1: 10},
			want: []string{"M0,-10.000", "0,10.000"},
		},
		{
			name: "full ring has a hole",
			arc:  layout.Arc{X0: 0, X1: 2 * math.Pi, Y0: 5, Y1: 10},
			want: []string{"M0,-10.000", "M0,-5.000"},
		},
		{
			name: "right half sector",
			arc:  layout.Arc{X0: 0, X1: math.Pi, Y0: 5, Y1: 10},
			want: []string{"M0.000,-10.000", "A10.000,10.000 0 0 1 0.000,10.000", "L0.000,5.000", "A5.000,5.000 0 0 0 0.000,-5.000", "Z"},
		},
		{
			name: "large sector",
			arc:  layout.Arc{X0: 0, X1: 1.5 * math.Pi, Y0: 5, Y1: 10},
			want: []string{" 0 1 1 "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArcPath(tt.arc)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ArcPath() = %q, missing %q", got, w)
				}
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	tr := sampleTree(t)
	l := layout.Compute(tr.Root, layout.DefaultConfig())
	b, _ := tr.Find("B")

	data, err := RenderJSON(l, tr, WithJSONDetails(), WithJSONBreadcrumbs([]*tree.Node{tr.Root, b}))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if doc.Root != "T" || doc.MaxDepth != 2 || doc.Radius != layout.DefaultRadius {
		t.Errorf("header = %+v", doc)
	}
	if len(doc.Arcs) != 4 {
		t.Fatalf("arcs = %d, want 4", len(doc.Arcs))
	}
	if len(doc.Breadcrumbs) != 2 || doc.Breadcrumbs[1].ID != "B" || doc.Breadcrumbs[1].Level != 1 {
		t.Errorf("breadcrumbs = %+v", doc.Breadcrumbs)
	}

	var bArc JSONArc
	for _, a := range doc.Arcs {
		if a.NodeID == "B" {
			bArc = a
		}
	}
	if bArc.RelationType != argument.RelationAttack || !bArc.HasChildren || bArc.Title != "Deliveries get harder" {
		t.Errorf("B details = %+v", bArc)
	}
	if bArc.X0 != math.Pi || bArc.X1 != 2*math.Pi {
		t.Errorf("B bounds = [%v, %v), want [π, 2π)", bArc.X0, bArc.X1)
	}
}

func TestRenderJSONWithoutDetails(t *testing.T) {
	tr := sampleTree(t)
	l := layout.Compute(tr.Root, layout.DefaultConfig())

	data, err := RenderJSON(l, tr)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"title"`) || strings.Contains(string(data), `"breadcrumbs"`) {
		t.Error("details and breadcrumbs should be omitted by default")
	}
}
