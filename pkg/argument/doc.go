// Package argument defines the debate dataset format consumed by argwheel.
//
// A dataset is a flat list of propositions. Exactly one proposition is the
// thesis; every other proposition declares one or more relations that point
// at the proposition it supports or attacks:
//
//	{
//	  "new_nodes": [
//	    {"id": "1", "type": "thesis", "title": "Cities should ban cars"},
//	    {"id": "2", "type": "practical", "title": "Deliveries get harder",
//	     "score": {"intensity": 0.7, "confidence": 0.5},
//	     "relations": [{"target_node_id": "1", "relation_type": "attack"}]}
//	  ]
//	}
//
// Ids are opaque. They may be JSON strings or numbers and are normalized to
// their string form, so "7" and 7 refer to the same proposition.
//
// # Loading
//
// [Decode] and [ReadFile] reject documents that cannot reach the tree
// builder: malformed JSON, a missing or non-array "new_nodes", an empty node
// list, or a list without a thesis. These failures are *errors.Error values
// with distinct codes so callers can show an inline message and keep the
// previous visualization.
//
// [Dataset.Validate] reports softer problems (unknown types, scores out of
// range, duplicate ids) as [Issue] values; they never block a load.
package argument
