package argument

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeType classifies a proposition.
type NodeType string

const (
	TypeThesis       NodeType = "thesis"
	TypeFoundational NodeType = "foundational"
	TypePractical    NodeType = "practical"
)

// Known reports whether t is one of the documented node types.
func (t NodeType) Known() bool {
	switch t {
	case TypeThesis, TypeFoundational, TypePractical:
		return true
	}
	return false
}

// RelationType is the polarity of a relation.
type RelationType string

const (
	RelationSupport RelationType = "support"
	RelationAttack  RelationType = "attack"
)

// Known reports whether r is support or attack.
func (r RelationType) Known() bool {
	return r == RelationSupport || r == RelationAttack
}

// ID is an opaque proposition identifier. It decodes from JSON strings and
// numbers alike and always encodes as a string.
type ID string

// UnmarshalJSON accepts "7", 7 and 7.0-style numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", data)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string.
func (id ID) String() string { return string(id) }

// Score carries the author's assessment of a proposition. Only Intensity
// affects rendering (fill brightness); neither value affects layout.
type Score struct {
	Intensity  float64 `json:"intensity"`
	Confidence float64 `json:"confidence"`
}

// Relation attaches a proposition to the proposition it targets.
type Relation struct {
	TargetNodeID ID           `json:"target_node_id"`
	RelationType RelationType `json:"relation_type"`
	Reasoning    string       `json:"reasoning,omitempty"`
}

// Proposition is a node of a debate dataset as supplied externally.
type Proposition struct {
	ID          ID         `json:"id"`
	Type        NodeType   `json:"type"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Quote       string     `json:"quote,omitempty"`
	Speaker     string     `json:"speaker,omitempty"`
	Score       Score      `json:"score"`
	Relations   []Relation `json:"relations,omitempty"`
}

// IsThesis reports whether p is the thesis type.
func (p Proposition) IsThesis() bool { return p.Type == TypeThesis }

// RelationTo returns the first relation of p that targets id.
func (p Proposition) RelationTo(id ID) (Relation, bool) {
	for _, r := range p.Relations {
		if r.TargetNodeID == id {
			return r, true
		}
	}
	return Relation{}, false
}
