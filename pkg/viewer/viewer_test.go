package viewer

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/observability"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
	"github.com/matzehuels/argwheel/pkg/tree"
)

func prop(id, typ, target string, rel argument.RelationType) argument.Proposition {
	p := argument.Proposition{ID: argument.ID(id), Type: argument.NodeType(typ), Title: "title " + id}
	if target != "" {
		p.Relations = []argument.Relation{{TargetNodeID: argument.ID(target), RelationType: rel, Reasoning: "because " + id}}
	}
	return p
}

// T -> A -> A1 -> A1x, T -> B
func debateTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]argument.Proposition{
		prop("T", "thesis", "", ""),
		prop("A", "foundational", "T", argument.RelationSupport),
		prop("B", "practical", "T", argument.RelationAttack),
		prop("A1", "practical", "A", argument.RelationSupport),
		prop("A1x", "practical", "A1", argument.RelationAttack),
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func otherTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]argument.Proposition{
		prop("X", "thesis", "", ""),
		prop("Y", "practical", "X", argument.RelationSupport),
	})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func stack(ids ...string) []argument.ID {
	out := make([]argument.ID, len(ids))
	for i, id := range ids {
		out[i] = argument.ID(id)
	}
	return out
}

func TestEmptyViewer(t *testing.T) {
	v := New()
	if v.Tree() != nil || v.Focus() != nil || v.Breadcrumbs() != nil {
		t.Error("empty viewer should have no tree")
	}
	if v.Click("A", 1) || v.ZoomOut() || v.ZoomToLevel(0) || v.Hover("A") {
		t.Error("operations on an empty viewer should be no-ops")
	}
	if v.Layout().Len() != 0 {
		t.Error("empty viewer should have an empty layout")
	}
	if !v.Resize(100, 100) {
		t.Error("resize should apply before a load")
	}
}

func TestNavigation(t *testing.T) {
	v := New(WithSize(400, 400))
	v.Install(debateTree(t), zoom.ViewState{})

	steps := []struct {
		name    string
		op      func() bool
		changed bool
		want    []argument.ID
	}{
		{"click leaf", func() bool { return v.Click("B", 1) }, false, stack("T")},
		{"click A", func() bool { return v.Click("A", 1) }, true, stack("T", "A")},
		{"click A1", func() bool { return v.Click("A1", 1) }, true, stack("T", "A", "A1")},
		{"click center", func() bool { return v.Click("A1", 0) }, true, stack("T", "A")},
		{"click grandchild", func() bool { return v.Click("A1", 1) }, true, stack("T", "A", "A1")},
		{"level past top", func() bool { return v.ZoomToLevel(5) }, false, stack("T", "A", "A1")},
		{"level 0", func() bool { return v.ZoomToLevel(0) }, true, stack("T")},
		{"zoom out at root", func() bool { return v.ZoomOut() }, false, stack("T")},
		{"click unknown", func() bool { return v.Click("nope", 2) }, false, stack("T")},
		{"click center at root", func() bool { return v.Click("T", 0) }, false, stack("T")},
	}
	for _, s := range steps {
		if got := s.op(); got != s.changed {
			t.Errorf("%s: changed = %v, want %v", s.name, got, s.changed)
		}
		if got := v.State().Stack; !reflect.DeepEqual(got, s.want) {
			t.Errorf("%s: stack = %v, want %v", s.name, got, s.want)
		}
		if l := v.Layout(); l.Root != v.State().Focus() {
			t.Errorf("%s: layout root %s does not match focus %s", s.name, l.Root, v.State().Focus())
		}
	}
}

func TestZoomToLevelRestoresFullTree(t *testing.T) {
	v := New()
	v.Install(debateTree(t), zoom.ViewState{})
	full := v.Layout()

	v.Click("A1", 1)
	if v.Layout().MaxDepth != 1 {
		t.Fatalf("zoomed MaxDepth = %d, want 1", v.Layout().MaxDepth)
	}
	v.ZoomToLevel(0)
	if !reflect.DeepEqual(v.Layout(), full) {
		t.Error("returning to level 0 should reproduce the initial layout")
	}
}

func TestBreadcrumbs(t *testing.T) {
	v := New()
	v.Install(debateTree(t), zoom.ViewState{Stack: stack("T", "A", "A1")})

	var got []argument.ID
	for _, n := range v.Breadcrumbs() {
		got = append(got, n.ID)
	}
	if !reflect.DeepEqual(got, stack("T", "A", "A1")) {
		t.Errorf("Breadcrumbs = %v", got)
	}
	if v.Focus().ID != "A1" {
		t.Errorf("Focus = %s", v.Focus().ID)
	}
}

func TestInstallNormalizes(t *testing.T) {
	v := New()
	v.Install(debateTree(t), zoom.ViewState{Stack: stack("T", "B", "A")})
	if got := v.State().Stack; !reflect.DeepEqual(got, stack("T", "B")) {
		t.Errorf("stack = %v, want [T B]", got)
	}
}

func TestHover(t *testing.T) {
	v := New()
	v.Install(debateTree(t), zoom.ViewState{})

	if v.Hover("nope") {
		t.Error("hovering an unknown node should fail")
	}
	if !v.Hover("B") {
		t.Fatal("hovering a drawn node should succeed")
	}
	card, ok := v.HoveredCard()
	if !ok || card.ID != "B" || card.RelationType != argument.RelationAttack || card.Parent != "T" || card.Depth != 1 {
		t.Errorf("card = %+v", card)
	}
	if card.Reasoning != "because B" || card.Title != "title B" {
		t.Errorf("card text = %q / %q", card.Title, card.Reasoning)
	}

	v.Click("A", 1)
	if v.Hovered() != nil {
		t.Error("zooming away from the hovered node should clear it")
	}
	if v.Hover("B") {
		t.Error("nodes outside the focus cannot be hovered")
	}
	if !v.Hover("A1") {
		t.Fatal("hover A1")
	}
	v.MouseOut()
	if _, ok := v.HoveredCard(); ok {
		t.Error("MouseOut should clear the card")
	}
}

func TestResizeKeepsFocus(t *testing.T) {
	v := New(WithSize(400, 400))
	v.Install(debateTree(t), zoom.ViewState{})
	v.Click("A", 1)

	if v.Resize(0, 100) {
		t.Error("non-positive size should be rejected")
	}
	if !v.Resize(200, 100) {
		t.Fatal("resize failed")
	}
	l := v.Layout()
	if l.Root != "A" {
		t.Errorf("Root = %s, want A", l.Root)
	}
	if l.Radius != 50 {
		t.Errorf("Radius = %g, want 50", l.Radius)
	}
	if w, h := v.Size(); w != 200 || h != 100 {
		t.Errorf("Size = %gx%g", w, h)
	}
}

func TestLoad(t *testing.T) {
	v := New()
	tr := debateTree(t)
	if err := v.Load(context.Background(), func(context.Context) (*tree.Tree, error) { return tr, nil }); err != nil {
		t.Fatal(err)
	}
	if v.Tree() != tr || v.Focus().ID != "T" {
		t.Fatal("load should install the tree at the thesis")
	}

	v.Click("A", 1)
	failure := errors.New(errors.ErrCodeNoThesis, "no thesis")
	err := v.Load(context.Background(), func(context.Context) (*tree.Tree, error) { return nil, failure })
	if !errors.Is(err, errors.ErrCodeNoThesis) {
		t.Fatalf("error = %v", err)
	}
	if v.Tree() != tr || v.State().Focus() != "A" {
		t.Error("a failed load should keep the previous dataset and view")
	}

	err = v.Load(context.Background(), func(context.Context) (*tree.Tree, error) { return nil, nil })
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("nil tree error = %v", err)
	}
}

func TestLoadSupersedes(t *testing.T) {
	v := New()
	started := make(chan struct{})
	slowErr := make(chan error, 1)

	go func() {
		slowErr <- v.Load(context.Background(), func(ctx context.Context) (*tree.Tree, error) {
			close(started)
			<-ctx.Done()
			return debateTree(t), nil
		})
	}()
	<-started

	other := otherTree(t)
	if err := v.Load(context.Background(), func(context.Context) (*tree.Tree, error) { return other, nil }); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-slowErr:
		if !errors.Is(err, errors.ErrCodeCanceled) {
			t.Errorf("superseded load error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("superseded load was not canceled")
	}
	if v.Tree() != other {
		t.Error("the newest load must win")
	}
}

func TestInstallCancelsPendingLoad(t *testing.T) {
	v := New()
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- v.Load(context.Background(), func(ctx context.Context) (*tree.Tree, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})
	}()
	<-started

	tr := debateTree(t)
	v.Install(tr, zoom.ViewState{})
	if err := <-done; !errors.Is(err, errors.ErrCodeCanceled) {
		t.Errorf("error = %v", err)
	}
	if v.Tree() != tr {
		t.Error("Install should win over the pending load")
	}
}

type zoomRecorder struct {
	mu    sync.Mutex
	moves []string
}

func (z *zoomRecorder) OnZoom(_ context.Context, from, to string, _ int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.moves = append(z.moves, from+">"+to)
}

func TestZoomHooks(t *testing.T) {
	rec := &zoomRecorder{}
	observability.SetZoomHooks(rec)
	t.Cleanup(observability.Reset)

	v := New()
	v.Install(debateTree(t), zoom.ViewState{})
	v.Click("A", 1)
	v.Click("B", 1) // outside focus, no event
	v.ZoomOut()

	want := []string{"T>A", "A>T"}
	if !reflect.DeepEqual(rec.moves, want) {
		t.Errorf("moves = %v, want %v", rec.moves, want)
	}
}

func TestConcurrentUse(t *testing.T) {
	v := New()
	v.Install(debateTree(t), zoom.ViewState{})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				switch (i + j) % 5 {
				case 0:
					v.Click("A1", 1)
				case 1:
					v.ZoomOut()
				case 2:
					v.Hover("A")
				case 3:
					v.Resize(float64(100+j), 200)
				case 4:
					_ = v.Layout()
					_ = v.Breadcrumbs()
				}
			}
		}()
	}
	wg.Wait()

	if l := v.Layout(); l.Root != v.State().Focus() {
		t.Errorf("layout root %s does not match focus %s", l.Root, v.State().Focus())
	}
}
