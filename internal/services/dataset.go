package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"evalboard/internal/domain"
)

type datasetService struct {
	datasetRepo    domain.DatasetRepository
	exampleRepo    domain.ExampleRepository
	splitRepo      domain.SplitRepository
	fetcher        domain.ArchiveFetcher
	contextTimeout time.Duration
}

// NewDatasetService creates a DatasetService with the given repositories and archive fetcher.
func NewDatasetService(
	datasetRepo domain.DatasetRepository,
	exampleRepo domain.ExampleRepository,
	splitRepo domain.SplitRepository,
	fetcher domain.ArchiveFetcher,
	timeout time.Duration,
) domain.DatasetService {
	return &datasetService{
		datasetRepo:    datasetRepo,
		exampleRepo:    exampleRepo,
		splitRepo:      splitRepo,
		fetcher:        fetcher,
		contextTimeout: timeout,
	}
}

func (s *datasetService) CreateDataset(ctx context.Context, dataset *domain.Dataset) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(dataset.Name) == "" {
		return fmt.Errorf("%w: dataset name is required", domain.ErrInvalidInput)
	}
	if dataset.OwnerID == "" {
		return fmt.Errorf("%w: dataset owner is required", domain.ErrInvalidInput)
	}

	dataset.CreatedAt = time.Now()
	dataset.UpdatedAt = time.Now()

	return s.datasetRepo.Create(ctx, dataset)
}

// ownedDataset fetches a dataset and verifies the caller owns it. Datasets
// owned by someone else come back as ErrNotFound so the API never confirms
// they exist.
func ownedDataset(ctx context.Context, repo domain.DatasetRepository, datasetID, callerID string) (*domain.Dataset, error) {
	dataset, err := repo.GetByID(ctx, datasetID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if dataset.OwnerID != callerID {
		return nil, domain.ErrNotFound
	}
	return dataset, nil
}

func (s *datasetService) GetDatasetByID(ctx context.Context, id, callerID string) (*domain.Dataset, []*domain.Split, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	dataset, err := ownedDataset(ctx, s.datasetRepo, id, callerID)
	if err != nil {
		return nil, nil, 0, err
	}
	catalog, err := s.splitRepo.ListSplitsByDatasetID(ctx, id)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list splits: %w", err)
	}
	if catalog == nil {
		catalog = []*domain.Split{}
	}
	count, err := s.exampleRepo.CountByDatasetID(ctx, id)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("count examples: %w", err)
	}
	return dataset, catalog, count, nil
}

func (s *datasetService) ListDatasetsByOwner(ctx context.Context, ownerID string) ([]*domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	datasets, err := s.datasetRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	if datasets == nil {
		datasets = []*domain.Dataset{}
	}
	return datasets, nil
}

func (s *datasetService) DeleteDataset(ctx context.Context, datasetID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return err
	}
	if err := s.datasetRepo.Delete(ctx, datasetID); err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

func (s *datasetService) ListExamples(ctx context.Context, datasetID, callerID string, p domain.PaginationParams) ([]*domain.Example, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return nil, 0, err
	}
	examples, err := s.exampleRepo.ListByDatasetID(ctx, datasetID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list examples: %w", err)
	}
	if examples == nil {
		examples = []*domain.Example{}
	}
	total, err := s.exampleRepo.CountByDatasetID(ctx, datasetID)
	if err != nil {
		return nil, 0, fmt.Errorf("count examples: %w", err)
	}
	return examples, total, nil
}

func (s *datasetService) ImportExamples(ctx context.Context, datasetID, callerID, archiveURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := ownedDataset(ctx, s.datasetRepo, datasetID, callerID); err != nil {
		return 0, err
	}
	archive, err := s.fetcher.Fetch(ctx, archiveURL)
	if err != nil {
		return 0, fmt.Errorf("fetch archive: %w", err)
	}

	now := time.Now()
	imported := 0
	for _, record := range archive.Examples {
		example := domain.NewExample(datasetID, record.Input, record.Output, now, now)
		if err := s.exampleRepo.Create(ctx, example); err != nil {
			return imported, fmt.Errorf("create example: %w", err)
		}
		imported++
	}
	return imported, nil
}
