package splits

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter records applied sets and fails for configured example IDs.
type fakeWriter struct {
	applied map[string][]string
	failFor map[string]error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{applied: map[string][]string{}, failFor: map[string]error{}}
}

func (f *fakeWriter) SetExampleSplits(ctx context.Context, exampleID string, splitIDs []string) error {
	if err, ok := f.failFor[exampleID]; ok {
		return err
	}
	f.applied[exampleID] = splitIDs
	return nil
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("applies every request and reports success", func(t *testing.T) {
		w := newFakeWriter()
		requests := []MutationRequest{
			{ExampleID: "ex-a", SplitIDs: []string{"sp-1"}},
			{ExampleID: "ex-b", SplitIDs: []string{}},
		}

		outcomes := Dispatch(ctx, w, requests)

		require.Len(t, outcomes, 2)
		for i, out := range outcomes {
			assert.Equal(t, requests[i].ExampleID, out.ExampleID)
			assert.NoError(t, out.Err)
		}
		assert.Equal(t, []string{"sp-1"}, w.applied["ex-a"])
		assert.Equal(t, []string{}, w.applied["ex-b"])
	})

	t.Run("one failure does not block the rest of the batch", func(t *testing.T) {
		w := newFakeWriter()
		boom := errors.New("connection reset")
		w.failFor["ex-b"] = boom
		requests := []MutationRequest{
			{ExampleID: "ex-a", SplitIDs: []string{"sp-1"}},
			{ExampleID: "ex-b", SplitIDs: []string{"sp-1"}},
			{ExampleID: "ex-c", SplitIDs: []string{"sp-1"}},
		}

		outcomes := Dispatch(ctx, w, requests)

		require.Len(t, outcomes, 3)
		assert.NoError(t, outcomes[0].Err)
		assert.ErrorIs(t, outcomes[1].Err, boom)
		assert.NoError(t, outcomes[2].Err)
		assert.Contains(t, w.applied, "ex-a")
		assert.NotContains(t, w.applied, "ex-b")
		assert.Contains(t, w.applied, "ex-c")
	})

	t.Run("empty batch yields empty outcomes", func(t *testing.T) {
		w := newFakeWriter()
		outcomes := Dispatch(ctx, w, nil)
		assert.Empty(t, outcomes)
	})
}
