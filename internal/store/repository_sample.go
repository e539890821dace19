package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
)

// sampleRepository is the PostgreSQL-backed implementation of
// [SampleRepository].
type sampleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSampleRepository constructs a [SampleRepository] backed by the provided
// database connection and logger.
func NewSampleRepository(db *DB, logger *logger.Logger) SampleRepository {
	logger.Debug().Msg("creating sample repository")
	return &sampleRepository{
		db:     db,
		logger: logger,
	}
}

func scanSample(row *sql.Row) (models.Sample, error) {
	var sample models.Sample
	err := row.Scan(&sample.ID, &sample.Name, &sample.OwnerID, &sample.ProtocolID, &sample.CreationDate)
	return sample, err
}

// FindByID retrieves a sample by its identifier.
// Returns [ErrSampleNotFound] when no record matches.
func (r *sampleRepository) FindByID(ctx context.Context, id int64) (models.Sample, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findSampleByID, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sampleRepository.FindByID").Msg("error: row is nil")
		return models.Sample{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	sample, err := scanSample(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sample{}, ErrSampleNotFound
		}
		log.Err(err).Str("func", "*sampleRepository.FindByID").Msg("error: scanning error")
		return models.Sample{}, err
	}

	return sample, nil
}

// Create persists a new sample and returns it with server-assigned fields.
func (r *sampleRepository) Create(ctx context.Context, sample models.Sample) (models.Sample, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSample, sample.Name, sample.OwnerID, sample.ProtocolID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sampleRepository.Create").Msg("error: row is nil")
		return models.Sample{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanSample(row)
	if err != nil {
		log.Err(err).Str("func", "*sampleRepository.Create").Msg("error: scanning error")
		return models.Sample{}, err
	}

	return created, nil
}

// Save updates the mutable fields of an existing sample.
// Returns [ErrSampleNotFound] when the id matches no record.
func (r *sampleRepository) Save(ctx context.Context, sample models.Sample) (models.Sample, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, saveSample, sample.ID, sample.Name, sample.OwnerID, sample.ProtocolID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sampleRepository.Save").Msg("error: row is nil")
		return models.Sample{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanSample(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sample{}, ErrSampleNotFound
		}
		log.Err(err).Str("func", "*sampleRepository.Save").Msg("error: scanning error")
		return models.Sample{}, err
	}

	return saved, nil
}
