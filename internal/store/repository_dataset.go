package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
)

// datasetRepository is the PostgreSQL-backed implementation of
// [DatasetRepository].
type datasetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database connection and logger.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

func scanDataset(row *sql.Row) (models.Dataset, error) {
	var dataset models.Dataset
	err := row.Scan(&dataset.ID, &dataset.Name, &dataset.OwnerID, &dataset.Editable, &dataset.CreationDate)
	return dataset, err
}

// FindByID retrieves a dataset by its identifier.
// Returns [ErrDatasetNotFound] when no record matches.
func (r *datasetRepository) FindByID(ctx context.Context, id int64) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findDatasetByID, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*datasetRepository.FindByID").Msg("error: row is nil")
		return models.Dataset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	dataset, err := scanDataset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		log.Err(err).Str("func", "*datasetRepository.FindByID").Msg("error: scanning error")
		return models.Dataset{}, err
	}

	return dataset, nil
}

// ListByOwner returns all datasets owned by the given user, most recent
// first.
func (r *datasetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("id", "name", "owner_id", "editable", "creation_date").
		From("datasets").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("creation_date DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.ListByOwner").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.ListByOwner").Msg("error executing list query")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var datasets []models.Dataset
	for rows.Next() {
		var dataset models.Dataset
		if err := rows.Scan(&dataset.ID, &dataset.Name, &dataset.OwnerID, &dataset.Editable, &dataset.CreationDate); err != nil {
			log.Err(err).Str("func", "*datasetRepository.ListByOwner").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		datasets = append(datasets, dataset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return datasets, nil
}

// Create persists a new dataset and returns it with server-assigned fields.
func (r *datasetRepository) Create(ctx context.Context, dataset models.Dataset) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createDataset, dataset.Name, dataset.OwnerID, dataset.Editable)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*datasetRepository.Create").Msg("error: row is nil")
		return models.Dataset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanDataset(row)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Create").Msg("error: scanning error")
		return models.Dataset{}, err
	}

	return created, nil
}

// Save updates the mutable fields of an existing dataset.
// Returns [ErrDatasetNotFound] when the id matches no record.
func (r *datasetRepository) Save(ctx context.Context, dataset models.Dataset) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, saveDataset, dataset.ID, dataset.Name, dataset.OwnerID, dataset.Editable)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*datasetRepository.Save").Msg("error: row is nil")
		return models.Dataset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanDataset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		log.Err(err).Str("func", "*datasetRepository.Save").Msg("error: scanning error")
		return models.Dataset{}, err
	}

	return saved, nil
}
