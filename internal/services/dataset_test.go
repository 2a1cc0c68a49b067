package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"evalboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExampleRepo is an in-memory ExampleRepository for tests.
type fakeExampleRepo struct {
	byID      map[string]*domain.Example
	nextID    int
	createErr error
	failAfter int // if > 0, Create fails once this many examples exist
}

func newFakeExampleRepo() *fakeExampleRepo {
	return &fakeExampleRepo{byID: make(map[string]*domain.Example), nextID: 1}
}

func (f *fakeExampleRepo) Create(ctx context.Context, e *domain.Example) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failAfter > 0 && len(f.byID) >= f.failAfter {
		return errors.New("insert failed")
	}
	e.ID = fmt.Sprintf("ex-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeExampleRepo) GetByID(ctx context.Context, id string) (*domain.Example, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeExampleRepo) ListByDatasetID(ctx context.Context, datasetID string, p domain.PaginationParams) ([]*domain.Example, error) {
	var out []*domain.Example
	for _, e := range f.byID {
		if e.DatasetID == datasetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExampleRepo) CountByDatasetID(ctx context.Context, datasetID string) (int, error) {
	n := 0
	for _, e := range f.byID {
		if e.DatasetID == datasetID {
			n++
		}
	}
	return n, nil
}

// fakeArchiveFetcher returns a fixed archive or error.
type fakeArchiveFetcher struct {
	archive domain.DatasetArchive
	err     error
	gotURL  string
}

func (f *fakeArchiveFetcher) Fetch(ctx context.Context, url string) (domain.DatasetArchive, error) {
	f.gotURL = url
	if f.err != nil {
		return domain.DatasetArchive{}, f.err
	}
	return f.archive, nil
}

func newTestDatasetService(
	datasetRepo domain.DatasetRepository,
	exampleRepo domain.ExampleRepository,
	splitRepo domain.SplitRepository,
	fetcher domain.ArchiveFetcher,
) domain.DatasetService {
	return NewDatasetService(datasetRepo, exampleRepo, splitRepo, fetcher, 2*time.Second)
}

func TestDatasetService_CreateDataset(t *testing.T) {
	datasetRepo := newFakeDatasetRepo()
	svc := newTestDatasetService(datasetRepo, newFakeExampleRepo(), newFakeSplitRepo(), &fakeArchiveFetcher{})

	dataset := &domain.Dataset{Name: "summarization evals", OwnerID: "u1"}
	require.NoError(t, svc.CreateDataset(context.Background(), dataset))
	assert.NotEmpty(t, dataset.ID)
	assert.False(t, dataset.CreatedAt.IsZero())

	err := svc.CreateDataset(context.Background(), &domain.Dataset{Name: "  ", OwnerID: "u1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.CreateDataset(context.Background(), &domain.Dataset{Name: "no owner"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDatasetService_GetDatasetByID(t *testing.T) {
	datasetRepo := newFakeDatasetRepo("ds-1")
	exampleRepo := newFakeExampleRepo()
	splitRepo := newFakeSplitRepo()
	splitRepo.addSplit("ds-1", "sp-1", "train")
	exampleRepo.byID["ex-1"] = &domain.Example{ID: "ex-1", DatasetID: "ds-1"}
	exampleRepo.byID["ex-2"] = &domain.Example{ID: "ex-2", DatasetID: "ds-1"}
	exampleRepo.byID["ex-3"] = &domain.Example{ID: "ex-3", DatasetID: "ds-other"}

	svc := newTestDatasetService(datasetRepo, exampleRepo, splitRepo, &fakeArchiveFetcher{})

	dataset, catalog, count, err := svc.GetDatasetByID(context.Background(), "ds-1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "ds-1", dataset.ID)
	require.Len(t, catalog, 1)
	assert.Equal(t, 2, count)

	_, _, _, err = svc.GetDatasetByID(context.Background(), "missing", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetService_ListDatasetsByOwner(t *testing.T) {
	datasetRepo := newFakeDatasetRepo("ds-1", "ds-2")
	svc := newTestDatasetService(datasetRepo, newFakeExampleRepo(), newFakeSplitRepo(), &fakeArchiveFetcher{})

	got, err := svc.ListDatasetsByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.ListDatasetsByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDatasetService_ListExamples(t *testing.T) {
	datasetRepo := newFakeDatasetRepo("ds-1")
	exampleRepo := newFakeExampleRepo()
	exampleRepo.byID["ex-1"] = &domain.Example{ID: "ex-1", DatasetID: "ds-1"}

	svc := newTestDatasetService(datasetRepo, exampleRepo, newFakeSplitRepo(), &fakeArchiveFetcher{})

	examples, total, err := svc.ListExamples(context.Background(), "ds-1", "u1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, examples, 1)
	assert.Equal(t, 1, total)

	_, _, err = svc.ListExamples(context.Background(), "missing", "u1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetService_ImportExamples(t *testing.T) {
	datasetRepo := newFakeDatasetRepo("ds-1")
	exampleRepo := newFakeExampleRepo()
	fetcher := &fakeArchiveFetcher{
		archive: domain.DatasetArchive{
			Name: "imported",
			Examples: []domain.ArchiveExample{
				{Input: json.RawMessage(`{"prompt":"a"}`), Output: json.RawMessage(`{"answer":"b"}`)},
				{Input: json.RawMessage(`{"prompt":"c"}`), Output: json.RawMessage(`{"answer":"d"}`)},
			},
		},
	}

	svc := newTestDatasetService(datasetRepo, exampleRepo, newFakeSplitRepo(), fetcher)

	imported, err := svc.ImportExamples(context.Background(), "ds-1", "u1", "https://example.com/archive.json")
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, "https://example.com/archive.json", fetcher.gotURL)
	assert.Len(t, exampleRepo.byID, 2)
}

func TestDatasetService_ImportExamples_FetchError(t *testing.T) {
	svc := newTestDatasetService(
		newFakeDatasetRepo("ds-1"),
		newFakeExampleRepo(),
		newFakeSplitRepo(),
		&fakeArchiveFetcher{err: errors.New("connection refused")},
	)

	_, err := svc.ImportExamples(context.Background(), "ds-1", "u1", "https://example.com/archive.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch archive")
}

func TestDatasetService_ImportExamples_PartialInsertFailure(t *testing.T) {
	exampleRepo := newFakeExampleRepo()
	exampleRepo.failAfter = 1
	fetcher := &fakeArchiveFetcher{
		archive: domain.DatasetArchive{
			Examples: []domain.ArchiveExample{
				{Input: json.RawMessage(`1`)},
				{Input: json.RawMessage(`2`)},
			},
		},
	}

	svc := newTestDatasetService(newFakeDatasetRepo("ds-1"), exampleRepo, newFakeSplitRepo(), fetcher)

	imported, err := svc.ImportExamples(context.Background(), "ds-1", "u1", "https://example.com/archive.json")
	require.Error(t, err)
	assert.Equal(t, 1, imported)
}

func TestDatasetService_ImportExamples_DatasetNotFound(t *testing.T) {
	svc := newTestDatasetService(newFakeDatasetRepo(), newFakeExampleRepo(), newFakeSplitRepo(), &fakeArchiveFetcher{})

	_, err := svc.ImportExamples(context.Background(), "missing", "u1", "https://example.com/archive.json")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetService_DeleteDataset(t *testing.T) {
	datasetRepo := newFakeDatasetRepo("ds-1")
	svc := newTestDatasetService(datasetRepo, newFakeExampleRepo(), newFakeSplitRepo(), &fakeArchiveFetcher{})

	require.NoError(t, svc.DeleteDataset(context.Background(), "ds-1", "u1"))
	assert.Empty(t, datasetRepo.byID)

	err := svc.DeleteDataset(context.Background(), "ds-1", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatasetService_ForeignDatasetIsNotFound(t *testing.T) {
	datasetRepo := newFakeDatasetRepo()
	datasetRepo.byID["ds-2"] = &domain.Dataset{ID: "ds-2", Name: "someone else's", OwnerID: "u2"}
	exampleRepo := newFakeExampleRepo()
	exampleRepo.byID["ex-1"] = &domain.Example{ID: "ex-1", DatasetID: "ds-2"}

	svc := newTestDatasetService(datasetRepo, exampleRepo, newFakeSplitRepo(), &fakeArchiveFetcher{})

	_, _, _, err := svc.GetDatasetByID(context.Background(), "ds-2", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.ListExamples(context.Background(), "ds-2", "u1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.ImportExamples(context.Background(), "ds-2", "u1", "https://example.com/archive.json")
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.DeleteDataset(context.Background(), "ds-2", "u1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, datasetRepo.byID, "ds-2")
}
