package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/lanaseq/lanaseq/models"
)

// UserRepository provides persistence for user accounts, including the
// lockout bookkeeping fields updated on every sign-in attempt.
type UserRepository interface {
	// FindByEmail retrieves an account by its unique email.
	// Returns ErrNoUserWasFound when no account matches.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindByID retrieves an account by its internal identifier.
	// Returns ErrNoUserWasFound when no account matches.
	FindByID(ctx context.Context, id int64) (models.User, error)

	// Create persists a new account and returns it with its server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user models.User) (models.User, error)

	// Save updates all mutable fields of an existing account.
	Save(ctx context.Context, user models.User) (models.User, error)

	// SaveSignAttempt persists only the lockout bookkeeping fields
	// (SignAttempts, LastSignAttempt, Active) of the given account. The
	// update is committed before the method returns so that a failed
	// authentication attempt is recorded even though the sign-in itself
	// subsequently reports an error.
	SaveSignAttempt(ctx context.Context, user models.User) error
}

// DatasetRepository provides persistence for sequencing datasets.
type DatasetRepository interface {
	FindByID(ctx context.Context, id int64) (models.Dataset, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Dataset, error)
	Create(ctx context.Context, dataset models.Dataset) (models.Dataset, error)
	Save(ctx context.Context, dataset models.Dataset) (models.Dataset, error)
}

// ProtocolRepository provides persistence for laboratory protocols.
type ProtocolRepository interface {
	FindByID(ctx context.Context, id int64) (models.Protocol, error)
	Create(ctx context.Context, protocol models.Protocol) (models.Protocol, error)
	Save(ctx context.Context, protocol models.Protocol) (models.Protocol, error)
}

// SampleRepository provides persistence for biological samples.
type SampleRepository interface {
	FindByID(ctx context.Context, id int64) (models.Sample, error)
	Create(ctx context.Context, sample models.Sample) (models.Sample, error)
	Save(ctx context.Context, sample models.Sample) (models.Sample, error)
}
