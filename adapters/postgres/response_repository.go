package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"likertlab/domain/core"
	"likertlab/domain/survey"
	"likertlab/internal/errors"
	"likertlab/ports"
)

// responseRepository implements the ResponseRepository interface
type responseRepository struct {
	db *sqlx.DB
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db *sqlx.DB) ports.ResponseRepository {
	return &responseRepository{db: db}
}

// EnsureSchema creates the survey tables when missing
func (r *responseRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS survey_datasets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			scale_min INT NOT NULL,
			scale_max INT NOT NULL,
			columns JSONB NOT NULL,
			record_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS survey_responses (
			dataset_id TEXT NOT NULL REFERENCES survey_datasets(id) ON DELETE CASCADE,
			respondent INT NOT NULL,
			demographic INT NOT NULL,
			ratings JSONB NOT NULL,
			PRIMARY KEY (dataset_id, respondent)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError("failed to ensure survey schema", err)
		}
	}
	return nil
}

// SaveDataset stores a dataset and all of its responses in one transaction
func (r *responseRepository) SaveDataset(ctx context.Context, id core.DatasetID, name string, d *survey.Dataset) error {
	columnsJSON, err := json.Marshal(d.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO survey_datasets (id, name, scale_min, scale_max, columns, record_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, name, d.Scale.Min, d.Scale.Max, columnsJSON, d.Len(), time.Now(),
	)
	if err != nil {
		return errors.DatabaseError("failed to insert dataset", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO survey_responses (dataset_id, respondent, demographic, ratings)
		 VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return errors.DatabaseError("failed to prepare response insert", err)
	}
	defer stmt.Close()

	for i, rec := range d.Records {
		ratingsJSON, err := json.Marshal(rec.Ratings)
		if err != nil {
			return fmt.Errorf("failed to marshal ratings for respondent %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, id, i, rec.Demographic, ratingsJSON); err != nil {
			return errors.DatabaseError(fmt.Sprintf("failed to insert respondent %d", i), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit dataset", err)
	}
	return nil
}

// LoadDataset reconstructs a stored dataset in insertion order
func (r *responseRepository) LoadDataset(ctx context.Context, id core.DatasetID) (*survey.Dataset, error) {
	var (
		columnsJSON []byte
		scaleMin    int
		scaleMax    int
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT columns, scale_min, scale_max FROM survey_datasets WHERE id = $1`, id,
	).Scan(&columnsJSON, &scaleMin, &scaleMax)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrDatasetNotFound, id)
		}
		return nil, errors.DatabaseError("failed to load dataset", err)
	}

	d := &survey.Dataset{
		Scale: survey.Scale{Min: survey.Rating(scaleMin), Max: survey.Rating(scaleMax)},
	}
	if err := json.Unmarshal(columnsJSON, &d.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT demographic, ratings FROM survey_responses
		 WHERE dataset_id = $1 ORDER BY respondent`, id)
	if err != nil {
		return nil, errors.DatabaseError("failed to query responses", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			demographic int
			ratingsJSON []byte
		)
		if err := rows.Scan(&demographic, &ratingsJSON); err != nil {
			return nil, errors.DatabaseError("failed to scan response", err)
		}
		rec := survey.Record{Demographic: demographic}
		if err := json.Unmarshal(ratingsJSON, &rec.Ratings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ratings: %w", err)
		}
		d.Records = append(d.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate responses", err)
	}

	return d, nil
}

// ListDatasets returns stored dataset summaries, newest first
func (r *responseRepository) ListDatasets(ctx context.Context) ([]ports.DatasetInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, record_count, created_at FROM survey_datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.DatabaseError("failed to query datasets", err)
	}
	defer rows.Close()

	var infos []ports.DatasetInfo
	for rows.Next() {
		var info ports.DatasetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.RecordCount, &info.CreatedAt); err != nil {
			return nil, errors.DatabaseError("failed to scan dataset summary", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate datasets", err)
	}
	return infos, nil
}
