package domain

import (
	"context"
	"time"
)

// Dataset represents a collection of examples under observation, owned by a user
// swagger:model Dataset
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDataset returns a new Dataset with the given fields. ID is typically set by the repository on create.
func NewDataset(name, description, ownerID string, createdAt, updatedAt time.Time) *Dataset {
	return &Dataset{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// DatasetRepository defines the interface for dataset storage
type DatasetRepository interface {
	Create(ctx context.Context, dataset *Dataset) error
	GetByID(ctx context.Context, id string) (*Dataset, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Dataset, error)
	Delete(ctx context.Context, id string) error
}

// DatasetService defines the business logic for managing datasets and their
// examples. Operations on an existing dataset take the calling user's ID and
// report datasets owned by someone else as not found.
type DatasetService interface {
	CreateDataset(ctx context.Context, dataset *Dataset) error
	GetDatasetByID(ctx context.Context, id, callerID string) (*Dataset, []*Split, int, error)
	ListDatasetsByOwner(ctx context.Context, ownerID string) ([]*Dataset, error)
	DeleteDataset(ctx context.Context, datasetID, callerID string) error
	ListExamples(ctx context.Context, datasetID, callerID string, p PaginationParams) ([]*Example, int, error)
	ImportExamples(ctx context.Context, datasetID, callerID, archiveURL string) (int, error)
}
