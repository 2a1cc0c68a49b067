package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"evalboard/internal/domain"
	"evalboard/internal/splits"
)

// defaultSplitColor is used when a split is created without a color.
const defaultSplitColor = "#8b8b8b"

type splitService struct {
	datasetRepo    domain.DatasetRepository
	splitRepo      domain.SplitRepository
	contextTimeout time.Duration
}

// NewSplitService creates a SplitService with the given repositories.
func NewSplitService(datasetRepo domain.DatasetRepository, splitRepo domain.SplitRepository, timeout time.Duration) domain.SplitService {
	return &splitService{
		datasetRepo:    datasetRepo,
		splitRepo:      splitRepo,
		contextTimeout: timeout,
	}
}

func (s *splitService) ListSplits(ctx context.Context, datasetID, callerID string) ([]*domain.Split, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return nil, err
	}
	catalog, err := s.splitRepo.ListSplitsByDatasetID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	if catalog == nil {
		catalog = []*domain.Split{}
	}
	return catalog, nil
}

func (s *splitService) CreateSplit(ctx context.Context, datasetID, callerID, name, color string) (*domain.Split, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: split name is required", domain.ErrInvalidInput)
	}
	if color == "" {
		color = defaultSplitColor
	}
	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return nil, err
	}
	splitID, err := s.splitRepo.EnsureSplitForDataset(ctx, datasetID, name, color)
	if err != nil {
		return nil, fmt.Errorf("ensure split: %w", err)
	}
	split, err := s.splitRepo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, fmt.Errorf("get split: %w", err)
	}
	return split, nil
}

func (s *splitService) RenameSplit(ctx context.Context, datasetID, splitID, callerID, name string) (*domain.Split, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: split name is required", domain.ErrInvalidInput)
	}
	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return nil, err
	}
	catalog, err := s.splitRepo.ListSplitsByDatasetID(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	if !catalogHas(catalog, splitID) {
		return nil, domain.ErrNotFound
	}
	if err := s.splitRepo.UpdateSplitName(ctx, splitID, name); err != nil {
		return nil, err
	}
	split, err := s.splitRepo.GetSplitByID(ctx, splitID)
	if err != nil {
		return nil, fmt.Errorf("get split: %w", err)
	}
	return split, nil
}

func (s *splitService) DeleteSplit(ctx context.Context, datasetID, splitID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return err
	}
	return s.splitRepo.RemoveDatasetSplit(ctx, datasetID, splitID)
}

func (s *splitService) SplitStatuses(ctx context.Context, datasetID, callerID string, exampleIDs []string) ([]*domain.SplitWithStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	catalog, index, err := s.snapshot(ctx, datasetID, callerID, exampleIDs)
	if err != nil {
		return nil, err
	}
	statuses := splits.ComputeStatuses(exampleIDs, index, catalog)

	result := make([]*domain.SplitWithStatus, 0, len(catalog))
	for _, split := range catalog {
		result = append(result, &domain.SplitWithStatus{
			Split:  split,
			Status: string(statuses[split.ID]),
		})
	}
	return result, nil
}

func (s *splitService) ToggleSplit(ctx context.Context, datasetID, splitID, callerID string, exampleIDs []string) ([]domain.SplitApplyOutcome, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	catalog, index, err := s.snapshot(ctx, datasetID, callerID, exampleIDs)
	if err != nil {
		return nil, "", err
	}
	if !catalogHas(catalog, splitID) {
		return nil, "", domain.ErrNotFound
	}

	// An empty selection mutates nothing and has nothing to report.
	if len(exampleIDs) == 0 {
		return []domain.SplitApplyOutcome{}, string(splits.StatusUnchecked), nil
	}

	statuses := splits.ComputeStatuses(exampleIDs, index, catalog)
	requests := splits.ResolveToggle(splitID, statuses, exampleIDs, index)
	dispatched := splits.Dispatch(ctx, s.splitRepo, requests)

	outcomes := make([]domain.SplitApplyOutcome, 0, len(dispatched))
	for _, out := range dispatched {
		o := domain.SplitApplyOutcome{ExampleID: out.ExampleID, Applied: out.Err == nil}
		if out.Err != nil {
			o.Error = out.Err.Error()
		}
		outcomes = append(outcomes, o)
	}

	// A toggle fully normalizes the split across the selection: checked
	// settles to unchecked, anything else settles to checked.
	result := splits.StatusChecked
	if statuses[splitID] == splits.StatusChecked {
		result = splits.StatusUnchecked
	}
	return outcomes, string(result), nil
}

// snapshot checks the caller owns the dataset, then loads its split catalog
// and a fresh membership snapshot for the selected examples. The index is
// re-read on every call rather than cached; the engine treats it as
// read-only.
func (s *splitService) snapshot(ctx context.Context, datasetID, callerID string, exampleIDs []string) ([]*domain.Split, splits.MembershipIndex, error) {
	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return nil, nil, err
	}
	catalog, err := s.splitRepo.ListSplitsByDatasetID(ctx, datasetID)
	if err != nil {
		return nil, nil, fmt.Errorf("list splits: %w", err)
	}
	byExample, err := s.splitRepo.ListExampleSplitIDs(ctx, exampleIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("list example splits: %w", err)
	}
	return catalog, splits.NewMembershipIndex(byExample), nil
}

func catalogHas(catalog []*domain.Split, splitID string) bool {
	for _, split := range catalog {
		if split.ID == splitID {
			return true
		}
	}
	return false
}
