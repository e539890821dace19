package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
)

// protocolRepository is the PostgreSQL-backed implementation of
// [ProtocolRepository].
type protocolRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProtocolRepository constructs a [ProtocolRepository] backed by the
// provided database connection and logger.
func NewProtocolRepository(db *DB, logger *logger.Logger) ProtocolRepository {
	logger.Debug().Msg("creating protocol repository")
	return &protocolRepository{
		db:     db,
		logger: logger,
	}
}

func scanProtocol(row *sql.Row) (models.Protocol, error) {
	var protocol models.Protocol
	err := row.Scan(&protocol.ID, &protocol.Name, &protocol.OwnerID, &protocol.CreationDate)
	return protocol, err
}

// FindByID retrieves a protocol by its identifier.
// Returns [ErrProtocolNotFound] when no record matches.
func (r *protocolRepository) FindByID(ctx context.Context, id int64) (models.Protocol, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findProtocolByID, id)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*protocolRepository.FindByID").Msg("error: row is nil")
		return models.Protocol{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	protocol, err := scanProtocol(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Protocol{}, ErrProtocolNotFound
		}
		log.Err(err).Str("func", "*protocolRepository.FindByID").Msg("error: scanning error")
		return models.Protocol{}, err
	}

	return protocol, nil
}

// Create persists a new protocol. Protocol names are unique; a duplicate is
// reported as an unexpected DB error carrying the unique-violation code.
func (r *protocolRepository) Create(ctx context.Context, protocol models.Protocol) (models.Protocol, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createProtocol, protocol.Name, protocol.OwnerID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*protocolRepository.Create").Msg("error: row is nil")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Protocol{}, fmt.Errorf("protocol name taken: %w", err)
		}
		return models.Protocol{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanProtocol(row)
	if err != nil {
		log.Err(err).Str("func", "*protocolRepository.Create").Msg("error: scanning error")
		return models.Protocol{}, err
	}

	return created, nil
}

// Save updates the mutable fields of an existing protocol.
// Returns [ErrProtocolNotFound] when the id matches no record.
func (r *protocolRepository) Save(ctx context.Context, protocol models.Protocol) (models.Protocol, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, saveProtocol, protocol.ID, protocol.Name, protocol.OwnerID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*protocolRepository.Save").Msg("error: row is nil")
		return models.Protocol{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanProtocol(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Protocol{}, ErrProtocolNotFound
		}
		log.Err(err).Str("func", "*protocolRepository.Save").Msg("error: scanning error")
		return models.Protocol{}, err
	}

	return saved, nil
}
