package domain

import "context"

// Split represents a named group of examples within a dataset (e.g. train/test).
// Identity is ID; Name is unique across splits.
// swagger:model Split
type Split struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SplitWithStatus pairs a split with its aggregate tri-state status for a selection of examples.
// swagger:model SplitWithStatus
type SplitWithStatus struct {
	Split  *Split `json:"split"`
	Status string `json:"status"`
}

// SplitApplyOutcome is the per-example result of a bulk split toggle.
// Error is empty when the mutation for that example succeeded.
// swagger:model SplitApplyOutcome
type SplitApplyOutcome struct {
	ExampleID string `json:"example_id"`
	Applied   bool   `json:"applied"`
	Error     string `json:"error,omitempty"`
}

// SplitRepository defines storage for splits and dataset/example–split links.
type SplitRepository interface {
	// EnsureSplitForDataset resolves a split by name (creating it if missing), ensures the dataset has the split in dataset_splits, and returns the split ID.
	EnsureSplitForDataset(ctx context.Context, datasetID, name, color string) (splitID string, err error)
	// ListSplitsByDatasetID returns all splits associated with the given dataset via dataset_splits.
	ListSplitsByDatasetID(ctx context.Context, datasetID string) ([]*Split, error)
	GetSplitByID(ctx context.Context, splitID string) (*Split, error)
	UpdateSplitName(ctx context.Context, splitID, name string) error
	// RemoveDatasetSplit unlinks the split from the dataset and clears its example memberships within that dataset.
	RemoveDatasetSplit(ctx context.Context, datasetID, splitID string) error
	// ListExampleSplitIDs returns the split IDs currently assigned to each of the given examples.
	// Examples with no memberships are simply absent from the result.
	ListExampleSplitIDs(ctx context.Context, exampleIDs []string) (map[string][]string, error)
	// SetExampleSplits replaces all split links for the given example with the given split IDs.
	SetExampleSplits(ctx context.Context, exampleID string, splitIDs []string) error
}

// SplitService defines the business logic for the split catalog and the
// bulk-assignment engine behind the dashboard's split menus. Every operation
// is scoped to a dataset and the calling user; datasets owned by someone
// else are reported as not found.
type SplitService interface {
	ListSplits(ctx context.Context, datasetID, callerID string) ([]*Split, error)
	CreateSplit(ctx context.Context, datasetID, callerID, name, color string) (*Split, error)
	RenameSplit(ctx context.Context, datasetID, splitID, callerID, name string) (*Split, error)
	DeleteSplit(ctx context.Context, datasetID, splitID, callerID string) error
	// SplitStatuses returns the dataset's split catalog with one aggregate
	// status per split for the given selection of examples.
	SplitStatuses(ctx context.Context, datasetID, callerID string, exampleIDs []string) ([]*SplitWithStatus, error)
	// ToggleSplit normalizes membership of the given split across the whole
	// selection (remove from all when every example has it, otherwise add to
	// all) and returns per-example outcomes plus the resulting status.
	ToggleSplit(ctx context.Context, datasetID, splitID, callerID string, exampleIDs []string) ([]SplitApplyOutcome, string, error)
}
