package postgres

import (
	"context"
	"database/sql"

	"evalboard/internal/domain"
)

type datasetRepository struct {
	DB *sql.DB
}

// NewDatasetRepository returns a domain.DatasetRepository implemented with Postgres.
func NewDatasetRepository(db *sql.DB) domain.DatasetRepository {
	return &datasetRepository{DB: db}
}

func (r *datasetRepository) Create(ctx context.Context, dataset *domain.Dataset) error {
	query := `
		INSERT INTO datasets (name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, dataset.Name, dataset.Description, dataset.OwnerID, dataset.CreatedAt, dataset.UpdatedAt).Scan(&dataset.ID)
}

func (r *datasetRepository) GetByID(ctx context.Context, id string) (*domain.Dataset, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM datasets
		WHERE id = $1
	`
	dataset := &domain.Dataset{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&dataset.ID, &dataset.Name, &dataset.Description, &dataset.OwnerID, &dataset.CreatedAt, &dataset.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dataset, nil
}

func (r *datasetRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Dataset, error) {
	query := `
		SELECT id, name, description, owner_id, created_at, updated_at
		FROM datasets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*domain.Dataset
	for rows.Next() {
		dataset := &domain.Dataset{}
		if err := rows.Scan(&dataset.ID, &dataset.Name, &dataset.Description, &dataset.OwnerID, &dataset.CreatedAt, &dataset.UpdatedAt); err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Delete removes the dataset along with its examples, its dataset-split
// links, and the split memberships of those examples. Splits themselves are
// shared across datasets and stay behind.
func (r *datasetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM example_splits WHERE example_id IN (SELECT id FROM examples WHERE dataset_id = $1)`,
		id)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM dataset_splits WHERE dataset_id = $1`, id)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM examples WHERE dataset_id = $1`, id)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
