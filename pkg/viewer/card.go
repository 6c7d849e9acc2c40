package viewer

import (
	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// Card is the detail view of one node, shown while it is hovered.
type Card struct {
	ID           argument.ID           `json:"id"`
	Type         argument.NodeType     `json:"type"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Quote        string                `json:"quote,omitempty"`
	Speaker      string                `json:"speaker,omitempty"`
	Score        argument.Score        `json:"score"`
	RelationType argument.RelationType `json:"relation_type,omitempty"`
	Reasoning    string                `json:"reasoning,omitempty"`
	Parent       argument.ID           `json:"parent,omitempty"`
	Depth        int                   `json:"depth"`
	Children     int                   `json:"children"`
}

// CardFor builds the card of n.
func CardFor(n *tree.Node) Card {
	c := Card{
		ID:           n.ID,
		Type:         n.Type,
		Title:        n.Title,
		Description:  n.Description,
		Quote:        n.Quote,
		Speaker:      n.Speaker,
		Score:        n.Score,
		RelationType: n.RelationType,
		Reasoning:    n.RelationReasoning,
		Depth:        n.Depth(),
		Children:     len(n.Children),
	}
	if p := n.Parent(); p != nil {
		c.Parent = p.ID
	}
	return c
}

// HoveredCard returns the card of the hovered node.
func (v *Viewer) HoveredCard() (Card, bool) {
	n := v.Hovered()
	if n == nil {
		return Card{}, false
	}
	return CardFor(n), true
}
