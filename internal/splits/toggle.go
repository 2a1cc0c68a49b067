package splits

import "sort"

// MutationRequest is the complete desired membership set for one example.
// It is a full replacement, not a delta: the store is expected to make the
// example's memberships exactly SplitIDs.
type MutationRequest struct {
	ExampleID string
	SplitIDs  []string
}

// ResolveToggle translates a single user toggle on one split into a uniform
// batch of per-example mutations.
//
// When the split's current status is StatusChecked the toggle removes it from
// every selected example; for StatusIndeterminate or StatusUnchecked it adds
// the split to every selected example. One click therefore always normalizes
// the split across the whole selection in a single direction, never leaving
// it indeterminate.
//
// One request is emitted per selected example even when that example's set
// does not change; such requests are idempotent full replacements. An empty
// selection resolves to an empty batch.
func ResolveToggle(splitID string, statuses map[string]AggregateStatus, selection []string, index MembershipIndex) []MutationRequest {
	if len(selection) == 0 {
		return nil
	}
	remove := statuses[splitID] == StatusChecked

	requests := make([]MutationRequest, 0, len(selection))
	for _, exampleID := range selection {
		desired := make(map[string]struct{}, len(index[exampleID])+1)
		for id := range index[exampleID] {
			desired[id] = struct{}{}
		}
		if remove {
			delete(desired, splitID)
		} else {
			desired[splitID] = struct{}{}
		}
		requests = append(requests, MutationRequest{
			ExampleID: exampleID,
			SplitIDs:  sortedIDs(desired),
		})
	}
	return requests
}

// sortedIDs flattens a set into a sorted slice so batches are deterministic.
func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
