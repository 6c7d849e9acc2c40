package argument

import "fmt"

// Issue is a non-fatal problem found in a dataset.
type Issue struct {
	NodeID  ID
	Message string
}

func (i Issue) String() string {
	if i.NodeID == "" {
		return i.Message
	}
	return fmt.Sprintf("node %s: %s", i.NodeID, i.Message)
}

// Validate reports problems that do not prevent building a tree but are
// likely mistakes in the source data. The order of issues follows the
// order of nodes in the dataset.
func (d *Dataset) Validate() []Issue {
	var issues []Issue
	seen := make(map[ID]bool, len(d.NewNodes))
	theses := 0

	for _, p := range d.NewNodes {
		if p.ID == "" {
			issues = append(issues, Issue{Message: "node without id"})
		} else if seen[p.ID] {
			issues = append(issues, Issue{NodeID: p.ID, Message: "duplicate id, later node ignored"})
		}
		seen[p.ID] = true

		if p.IsThesis() {
			theses++
		} else if !p.Type.Known() {
			issues = append(issues, Issue{NodeID: p.ID, Message: fmt.Sprintf("unknown type %q", p.Type)})
		}

		if !inUnit(p.Score.Intensity) {
			issues = append(issues, Issue{NodeID: p.ID, Message: fmt.Sprintf("intensity %g outside [0,1]", p.Score.Intensity)})
		}
		if !inUnit(p.Score.Confidence) {
			issues = append(issues, Issue{NodeID: p.ID, Message: fmt.Sprintf("confidence %g outside [0,1]", p.Score.Confidence)})
		}

		if !p.IsThesis() && len(p.Relations) == 0 {
			issues = append(issues, Issue{NodeID: p.ID, Message: "no relations, node is unreachable"})
		}
		for _, r := range p.Relations {
			if !r.RelationType.Known() {
				issues = append(issues, Issue{NodeID: p.ID, Message: fmt.Sprintf("unknown relation type %q", r.RelationType)})
			}
		}
	}

	if theses > 1 {
		issues = append(issues, Issue{Message: fmt.Sprintf("%d thesis nodes, using the first", theses)})
	}
	return issues
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }
