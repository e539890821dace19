package store

import (
	"context"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
)

// Storages aggregates all repositories of the application behind one
// constructor so that the wiring in cmd/server stays flat.
type Storages struct {
	UserRepository     UserRepository
	DatasetRepository  DatasetRepository
	ProtocolRepository ProtocolRepository
	SampleRepository   SampleRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations and returns
// the repository set.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		DatasetRepository:  NewDatasetRepository(db, log),
		ProtocolRepository: NewProtocolRepository(db, log),
		SampleRepository:   NewSampleRepository(db, log),
	}, nil
}
