package postgres

import (
	"context"
	"database/sql"

	"evalboard/internal/domain"
)

type exampleRepository struct {
	DB *sql.DB
}

// NewExampleRepository returns a domain.ExampleRepository implemented with Postgres.
func NewExampleRepository(db *sql.DB) domain.ExampleRepository {
	return &exampleRepository{DB: db}
}

func (r *exampleRepository) Create(ctx context.Context, example *domain.Example) error {
	query := `
		INSERT INTO examples (dataset_id, input, output, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, example.DatasetID, example.Input, example.Output, example.CreatedAt, example.UpdatedAt).Scan(&example.ID)
}

func (r *exampleRepository) GetByID(ctx context.Context, id string) (*domain.Example, error) {
	query := `
		SELECT id, dataset_id, input, output, created_at, updated_at
		FROM examples
		WHERE id = $1
	`
	example := &domain.Example{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&example.ID, &example.DatasetID, &example.Input, &example.Output, &example.CreatedAt, &example.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return example, nil
}

func (r *exampleRepository) ListByDatasetID(ctx context.Context, datasetID string, p domain.PaginationParams) ([]*domain.Example, error) {
	query := `
		SELECT id, dataset_id, input, output, created_at, updated_at
		FROM examples
		WHERE dataset_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, datasetID, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []*domain.Example
	for rows.Next() {
		example := &domain.Example{}
		if err := rows.Scan(&example.ID, &example.DatasetID, &example.Input, &example.Output, &example.CreatedAt, &example.UpdatedAt); err != nil {
			return nil, err
		}
		examples = append(examples, example)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}

func (r *exampleRepository) CountByDatasetID(ctx context.Context, datasetID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM examples WHERE dataset_id = $1`, datasetID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
