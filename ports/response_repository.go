package ports

import (
	"context"
	"time"

	"likertlab/domain/core"
	"likertlab/domain/survey"
)

// DatasetInfo summarizes a stored dataset without its responses.
type DatasetInfo struct {
	ID          core.DatasetID `json:"id"`
	Name        string         `json:"name"`
	RecordCount int            `json:"record_count"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ResponseRepository persists generated survey datasets and their
// responses.
type ResponseRepository interface {
	// EnsureSchema creates the backing tables when missing.
	EnsureSchema(ctx context.Context) error

	// SaveDataset stores a dataset and all of its responses.
	SaveDataset(ctx context.Context, id core.DatasetID, name string, d *survey.Dataset) error

	// LoadDataset reconstructs a stored dataset in insertion order.
	// Returns core.ErrDatasetNotFound when the id is unknown.
	LoadDataset(ctx context.Context, id core.DatasetID) (*survey.Dataset, error)

	// ListDatasets returns stored dataset summaries, newest first.
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)
}
