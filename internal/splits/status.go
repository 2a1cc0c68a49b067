// Package splits implements the bulk split-assignment engine behind the
// dashboard's "assign examples to split" menus: tri-state status derivation
// over a multi-example selection, toggle resolution into full-replacement
// membership mutations, per-example dispatch, and the open-state machine for
// the assignment surface.
package splits

import "evalboard/internal/domain"

// AggregateStatus classifies one split across the current selection.
type AggregateStatus string

const (
	// StatusChecked means every selected example has the split.
	StatusChecked AggregateStatus = "checked"
	// StatusIndeterminate means some, but not all, selected examples have the split.
	StatusIndeterminate AggregateStatus = "indeterminate"
	// StatusUnchecked means no selected example has the split. An empty
	// selection yields StatusUnchecked for every split.
	StatusUnchecked AggregateStatus = "unchecked"
)

// MembershipIndex maps example ID to the set of split IDs currently assigned
// to it. It is a read-only snapshot taken from the repository at render or
// toggle time; the engine never mutates it.
type MembershipIndex map[string]map[string]struct{}

// NewMembershipIndex builds an index from the repository's
// example ID -> split IDs rows.
func NewMembershipIndex(byExample map[string][]string) MembershipIndex {
	idx := make(MembershipIndex, len(byExample))
	for exampleID, splitIDs := range byExample {
		set := make(map[string]struct{}, len(splitIDs))
		for _, id := range splitIDs {
			set[id] = struct{}{}
		}
		idx[exampleID] = set
	}
	return idx
}

// Has reports whether the example currently has the split. Examples absent
// from the index are treated as having no splits.
func (idx MembershipIndex) Has(exampleID, splitID string) bool {
	_, ok := idx[exampleID][splitID]
	return ok
}

// SplitIDs returns the split IDs assigned to the example. Examples absent
// from the index yield an empty slice.
func (idx MembershipIndex) SplitIDs(exampleID string) []string {
	set := idx[exampleID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// ComputeStatuses derives the aggregate status of every split in the catalog
// for the given selection. It is a pure function: same inputs always produce
// the same mapping.
//
// A split is StatusChecked iff the selection is nonempty and every selected
// example has it, StatusUnchecked iff no selected example has it, and
// StatusIndeterminate otherwise. Per split the scan stops as soon as both a
// member and a non-member have been seen, since no further example can change
// the classification.
func ComputeStatuses(selection []string, index MembershipIndex, catalog []*domain.Split) map[string]AggregateStatus {
	statuses := make(map[string]AggregateStatus, len(catalog))
	for _, split := range catalog {
		statuses[split.ID] = classify(selection, index, split.ID)
	}
	return statuses
}

func classify(selection []string, index MembershipIndex, splitID string) AggregateStatus {
	if len(selection) == 0 {
		return StatusUnchecked
	}
	var hasAny, missingAny bool
	for _, exampleID := range selection {
		if index.Has(exampleID, splitID) {
			hasAny = true
		} else {
			missingAny = true
		}
		if hasAny && missingAny {
			return StatusIndeterminate
		}
	}
	if hasAny {
		return StatusChecked
	}
	return StatusUnchecked
}
