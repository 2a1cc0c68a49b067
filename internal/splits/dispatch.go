package splits

import "context"

// MembershipWriter applies a full-replacement membership set for one example.
// The postgres split repository implements it; tests use fakes.
type MembershipWriter interface {
	SetExampleSplits(ctx context.Context, exampleID string, splitIDs []string) error
}

// Outcome reports the result of one dispatched mutation request.
type Outcome struct {
	ExampleID string
	Err       error
}

// Dispatch applies each request through the writer and returns one outcome
// per request, in request order. Requests are independent: a failure for one
// example neither aborts the batch nor rolls back other examples. Errors are
// returned as data in the outcomes, never propagated past the dispatcher.
func Dispatch(ctx context.Context, w MembershipWriter, requests []MutationRequest) []Outcome {
	outcomes := make([]Outcome, 0, len(requests))
	for _, req := range requests {
		err := w.SetExampleSplits(ctx, req.ExampleID, req.SplitIDs)
		outcomes = append(outcomes, Outcome{ExampleID: req.ExampleID, Err: err})
	}
	return outcomes
}
