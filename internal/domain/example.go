package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Example represents a single dataset example (an input/output pair under evaluation)
// swagger:model Example
type Example struct {
	ID        string          `json:"id"`
	DatasetID string          `json:"dataset_id"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewExample returns a new Example with the given fields. ID is typically set by the repository on create.
func NewExample(datasetID string, input, output json.RawMessage, createdAt, updatedAt time.Time) *Example {
	return &Example{
		DatasetID: datasetID,
		Input:     input,
		Output:    output,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// ExampleRepository defines the interface for example storage
type ExampleRepository interface {
	Create(ctx context.Context, example *Example) error
	GetByID(ctx context.Context, id string) (*Example, error)
	ListByDatasetID(ctx context.Context, datasetID string, p PaginationParams) ([]*Example, error)
	CountByDatasetID(ctx context.Context, datasetID string) (int, error)
}
