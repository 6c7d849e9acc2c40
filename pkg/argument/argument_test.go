package argument

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/argwheel/pkg/errors"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{`"7"`, "7"},
		{`7`, "7"},
		{`"abc"`, "abc"},
		{`12.5`, "12.5"},
		{`null`, ""},
	}

	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.input, err)
			continue
		}
		if id != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, id, tt.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Error("object id should fail")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{
			name:  "valid",
			input: `{"new_nodes": [{"id": 1, "type": "thesis"}, {"id": 2, "type": "practical", "relations": [{"target_node_id": 1, "relation_type": "support"}]}]}`,
		},
		{
			name:     "malformed json",
			input:    `{"new_nodes": [`,
			wantCode: errors.ErrCodeInvalidFormat,
		},
		{
			name:     "missing new_nodes",
			input:    `{"nodes": []}`,
			wantCode: errors.ErrCodeInvalidDataset,
		},
		{
			name:     "non-array new_nodes",
			input:    `{"new_nodes": {"id": 1}}`,
			wantCode: errors.ErrCodeInvalidDataset,
		},
		{
			name:     "empty new_nodes",
			input:    `{"new_nodes": []}`,
			wantCode: errors.ErrCodeEmptyDataset,
		},
		{
			name:     "no thesis",
			input:    `{"new_nodes": [{"id": 1, "type": "practical"}]}`,
			wantCode: errors.ErrCodeNoThesis,
		},
		{
			name:     "bad node shape",
			input:    `{"new_nodes": [1, 2]}`,
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Decode(strings.NewReader(tt.input))
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Decode() error: %v", err)
				}
				if len(ds.NewNodes) != 2 {
					t.Errorf("len(NewNodes) = %d, want 2", len(ds.NewNodes))
				}
				if ds.NewNodes[1].Relations[0].TargetNodeID != "1" {
					t.Errorf("numeric target id not normalized: %q", ds.NewNodes[1].Relations[0].TargetNodeID)
				}
				return
			}
			if err == nil {
				t.Fatalf("Decode() expected error with code %s", tt.wantCode)
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Decode() code = %s, want %s (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debate.json")
	content := `{"new_nodes": [{"id": "t", "type": "thesis", "title": "T"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if th, ok := ds.Thesis(); !ok || th.Title != "T" {
		t.Errorf("Thesis() = %+v, %v", th, ok)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeDatasetNotFound) {
		t.Errorf("missing file code = %s, want %s", errors.GetCode(err), errors.ErrCodeDatasetNotFound)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	input := `{"new_nodes": [{"id": "t", "type": "thesis"}, {"id": 2, "type": "foundational", "score": {"intensity": 0.4}, "relations": [{"target_node_id": "t", "relation_type": "attack"}]}]}`
	a, err := Unmarshal([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Unmarshal([]byte(input))
	if err != nil {
		t.Fatal(err)
	}

	ab, _ := a.Marshal()
	bb, _ := b.Marshal()
	if !bytes.Equal(ab, bb) {
		t.Error("Marshal() should be deterministic")
	}

	ha, _ := a.Hash()
	hb, _ := b.Hash()
	if ha != hb || len(ha) != 64 {
		t.Errorf("Hash() = %q and %q, want equal 64-char digests", ha, hb)
	}
	b.NewNodes[1].Score.Intensity = 0.5
	if hc, _ := b.Hash(); hc == ha {
		t.Error("Hash() should change with content")
	}

	var buf bytes.Buffer
	if err := a.Write(&buf); err != nil {
		t.Fatal(err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("re-decode written dataset: %v", err)
	}
	if again.NewNodes[1].ID != "2" || again.NewNodes[1].Score.Intensity != 0.4 {
		t.Errorf("written dataset lost data: %+v", again.NewNodes[1])
	}
}

func TestRelationTo(t *testing.T) {
	p := Proposition{
		ID: "c",
		Relations: []Relation{
			{TargetNodeID: "a", RelationType: RelationAttack, Reasoning: "first"},
			{TargetNodeID: "b", RelationType: RelationSupport},
			{TargetNodeID: "a", RelationType: RelationSupport, Reasoning: "second"},
		},
	}

	r, ok := p.RelationTo("a")
	if !ok || r.Reasoning != "first" {
		t.Errorf("RelationTo(a) = %+v, %v; want first relation", r, ok)
	}
	if _, ok := p.RelationTo("z"); ok {
		t.Error("RelationTo(z) should not be found")
	}
}

func TestValidate(t *testing.T) {
	ds := &Dataset{NewNodes: []Proposition{
		{ID: "t", Type: TypeThesis},
		{ID: "t2", Type: TypeThesis},
		{ID: "a", Type: "opinion", Relations: []Relation{{TargetNodeID: "t", RelationType: RelationSupport}}},
		{ID: "a", Type: TypePractical, Relations: []Relation{{TargetNodeID: "t", RelationType: "refute"}}},
		{ID: "b", Type: TypePractical, Score: Score{Intensity: 1.5}},
	}}

	issues := ds.Validate()
	want := []string{
		"node a: unknown type \"opinion\"",
		"node a: duplicate id, later node ignored",
		"node a: unknown relation type \"refute\"",
		"node b: intensity 1.5 outside [0,1]",
		"node b: no relations, node is unreachable",
		"2 thesis nodes, using the first",
	}

	if len(issues) != len(want) {
		t.Fatalf("Validate() returned %d issues, want %d: %v", len(issues), len(want), issues)
	}
	for i, w := range want {
		if issues[i].String() != w {
			t.Errorf("issue %d = %q, want %q", i, issues[i].String(), w)
		}
	}
}
