package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"evalboard/internal/domain"

	"github.com/lib/pq"
)

type splitRepository struct {
	DB *sql.DB
}

// NewSplitRepository returns a domain.SplitRepository implemented with Postgres.
func NewSplitRepository(db *sql.DB) domain.SplitRepository {
	return &splitRepository{DB: db}
}

func (r *splitRepository) EnsureSplitForDataset(ctx context.Context, datasetID, name, color string) (string, error) {
	var splitID string
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM splits WHERE name = $1`, name).Scan(&splitID)
	if err != nil && err != sql.ErrNoRows {
		return "", err
	}
	if err == sql.ErrNoRows {
		if err := r.DB.QueryRowContext(ctx, `INSERT INTO splits (name, color) VALUES ($1, $2) RETURNING id`, name, color).Scan(&splitID); err != nil {
			return "", err
		}
	}
	_, err = r.DB.ExecContext(ctx, `INSERT INTO dataset_splits (dataset_id, split_id) VALUES ($1, $2) ON CONFLICT (dataset_id, split_id) DO NOTHING`, datasetID, splitID)
	if err != nil {
		return "", err
	}
	return splitID, nil
}

func (r *splitRepository) ListSplitsByDatasetID(ctx context.Context, datasetID string) ([]*domain.Split, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, s.color FROM splits s
		 JOIN dataset_splits ds ON ds.split_id = s.id
		 WHERE ds.dataset_id = $1
		 ORDER BY s.name`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []*domain.Split
	for rows.Next() {
		var split domain.Split
		if err := rows.Scan(&split.ID, &split.Name, &split.Color); err != nil {
			return nil, err
		}
		splits = append(splits, &split)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return splits, nil
}

func (r *splitRepository) GetSplitByID(ctx context.Context, splitID string) (*domain.Split, error) {
	var split domain.Split
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, color FROM splits WHERE id = $1`, splitID).Scan(&split.ID, &split.Name, &split.Color)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &split, nil
}

func (r *splitRepository) UpdateSplitName(ctx context.Context, splitID, name string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE splits SET name = $2 WHERE id = $1`, splitID, name)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return fmt.Errorf("%w: split name already exists: %s", domain.ErrInvalidInput, name)
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *splitRepository) RemoveDatasetSplit(ctx context.Context, datasetID, splitID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM example_splits WHERE split_id = $1 AND example_id IN (SELECT id FROM examples WHERE dataset_id = $2)`,
		splitID, datasetID)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, `DELETE FROM dataset_splits WHERE dataset_id = $1 AND split_id = $2`, datasetID, splitID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *splitRepository) ListExampleSplitIDs(ctx context.Context, exampleIDs []string) (map[string][]string, error) {
	byExample := make(map[string][]string, len(exampleIDs))
	if len(exampleIDs) == 0 {
		return byExample, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT example_id, split_id FROM example_splits WHERE example_id = ANY($1)`,
		pq.Array(exampleIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var exampleID, splitID string
		if err := rows.Scan(&exampleID, &splitID); err != nil {
			return nil, err
		}
		byExample[exampleID] = append(byExample[exampleID], splitID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return byExample, nil
}

func (r *splitRepository) SetExampleSplits(ctx context.Context, exampleID string, splitIDs []string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM example_splits WHERE example_id = $1`, exampleID); err != nil {
		return err
	}
	for _, splitID := range splitIDs {
		if _, err := r.DB.ExecContext(ctx, `INSERT INTO example_splits (example_id, split_id) VALUES ($1, $2) ON CONFLICT (example_id, split_id) DO NOTHING`, exampleID, splitID); err != nil {
			return err
		}
	}
	return nil
}
