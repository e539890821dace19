package security

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/models"
)

// Entity kind names accepted by PermissionEvaluator.HasByID.
const (
	KindUser     = "user"
	KindDataset  = "dataset"
	KindProtocol = "protocol"
	KindSample   = "sample"
)

// entityEvaluator holds the per-kind callbacks the shared permission logic
// is parameterized with. The rules common to every kind — owners may read
// and write their own entities, managers and administrators may read and
// write everything — live in has; the callbacks capture what differs.
type entityEvaluator[T any] struct {
	// id extracts the entity identifier; zero means the entity is new.
	id func(T) int64

	// ownerID extracts the identifier of the owning account.
	ownerID func(T) int64

	// find loads the entity by identifier for HasByID checks.
	find func(context.Context, int64) (T, error)

	// create reports whether the principal may create the entity.
	create func(*Authentication, T) bool

	// guard, when set, is an extra gate applied to writes on existing
	// entities before the common rules.
	guard func(*Authentication, T) bool
}

// has applies the shared permission rules to one entity.
func (e entityEvaluator[T]) has(authentication *Authentication, entity T, permission models.Permission) bool {
	if authentication == nil {
		return false
	}

	if e.id(entity) == 0 {
		return e.create(authentication, entity)
	}

	if permission == models.Write && e.guard != nil && !e.guard(authentication, entity) {
		return false
	}

	return e.ownerID(entity) == authentication.UserID ||
		HasAnyRole(authentication, models.RoleManager, models.RoleAdmin)
}

// hasByID loads the entity and applies the shared rules. Missing entities
// report false.
func (e entityEvaluator[T]) hasByID(ctx context.Context, authentication *Authentication, id int64, permission models.Permission) bool {
	if authentication == nil {
		return false
	}

	entity, err := e.find(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Int64("id", id).
			Msg("permission check for unresolvable entity")
		return false
	}

	return e.has(authentication, entity, permission)
}

// permissionDelegator is the concrete implementation of PermissionEvaluator.
// It dispatches each check to the evaluator matching the entity kind.
type permissionDelegator struct {
	users     entityEvaluator[models.User]
	datasets  entityEvaluator[models.Dataset]
	protocols entityEvaluator[models.Protocol]
	samples   entityEvaluator[models.Sample]
	logger    *logger.Logger
}

// NewPermissionEvaluator constructs a PermissionEvaluator covering users,
// datasets, protocols and samples, wired to the given repositories.
func NewPermissionEvaluator(storages *store.Storages, logger *logger.Logger) PermissionEvaluator {
	return &permissionDelegator{
		users: entityEvaluator[models.User]{
			id:      func(u models.User) int64 { return u.ID },
			ownerID: func(u models.User) int64 { return u.ID },
			find:    storages.UserRepository.FindByID,
			// Creating accounts is a manager task; granting the admin flag
			// requires holding it.
			create: func(a *Authentication, u models.User) bool {
				if u.Admin {
					return HasRole(a, models.RoleAdmin)
				}
				return HasAnyRole(a, models.RoleManager, models.RoleAdmin)
			},
			// Administrator accounts are off-limits to everyone below
			// administrator, owners included.
			guard: func(a *Authentication, u models.User) bool {
				return !u.Admin || HasRole(a, models.RoleAdmin)
			},
		},
		datasets: entityEvaluator[models.Dataset]{
			id:      func(d models.Dataset) int64 { return d.ID },
			ownerID: func(d models.Dataset) int64 { return d.OwnerID },
			find:    storages.DatasetRepository.FindByID,
			create:  createsOwn[models.Dataset](func(d models.Dataset) int64 { return d.OwnerID }),
		},
		protocols: entityEvaluator[models.Protocol]{
			id:      func(p models.Protocol) int64 { return p.ID },
			ownerID: func(p models.Protocol) int64 { return p.OwnerID },
			find:    storages.ProtocolRepository.FindByID,
			create:  createsOwn[models.Protocol](func(p models.Protocol) int64 { return p.OwnerID }),
		},
		samples: entityEvaluator[models.Sample]{
			id:      func(s models.Sample) int64 { return s.ID },
			ownerID: func(s models.Sample) int64 { return s.OwnerID },
			find:    storages.SampleRepository.FindByID,
			create:  createsOwn[models.Sample](func(s models.Sample) int64 { return s.OwnerID }),
		},
		logger: logger,
	}
}

// createsOwn builds the creation rule shared by datasets, protocols and
// samples: any authenticated principal may create an entity they will own,
// while managers and administrators may create on behalf of others.
func createsOwn[T any](ownerID func(T) int64) func(*Authentication, T) bool {
	return func(a *Authentication, entity T) bool {
		owner := ownerID(entity)
		if owner == 0 || owner == a.UserID {
			return true
		}
		return HasAnyRole(a, models.RoleManager, models.RoleAdmin)
	}
}

// Has reports whether the principal holds the permission on the given
// entity. Both values and pointers of the supported kinds are accepted;
// anything else reports false.
func (d *permissionDelegator) Has(ctx context.Context, authentication *Authentication, subject any, permission models.Permission) bool {
	switch entity := subject.(type) {
	case models.User:
		return d.users.has(authentication, entity, permission)
	case *models.User:
		return entity != nil && d.users.has(authentication, *entity, permission)
	case models.Dataset:
		return d.datasets.has(authentication, entity, permission)
	case *models.Dataset:
		return entity != nil && d.datasets.has(authentication, *entity, permission)
	case models.Protocol:
		return d.protocols.has(authentication, entity, permission)
	case *models.Protocol:
		return entity != nil && d.protocols.has(authentication, *entity, permission)
	case models.Sample:
		return d.samples.has(authentication, entity, permission)
	case *models.Sample:
		return entity != nil && d.samples.has(authentication, *entity, permission)
	default:
		logger.FromContext(ctx).Debug().Str("func", "Has").
			Str("kind", typeName(subject)).Msg("permission check for unsupported entity kind")
		return false
	}
}

// HasAll reports whether the principal holds the permission on every entity
// in the collection, stopping at the first refusal. An empty or nil
// collection reports true.
func (d *permissionDelegator) HasAll(ctx context.Context, authentication *Authentication, subjects []any, permission models.Permission) bool {
	for _, subject := range subjects {
		if !d.Has(ctx, authentication, subject, permission) {
			return false
		}
	}
	return true
}

// HasByID loads the entity of the given kind and checks the permission on
// it. Unknown kinds, identifiers that are not numeric and entities that do
// not exist all report false.
func (d *permissionDelegator) HasByID(ctx context.Context, authentication *Authentication, id any, kind string, permission models.Permission) bool {
	numericID, ok := coerceID(id)
	if !ok {
		logger.FromContext(ctx).Debug().Str("func", "HasByID").Str("kind", kind).
			Any("id", id).Msg("permission check for non-numeric identifier")
		return false
	}

	switch kind {
	case KindUser:
		return d.users.hasByID(ctx, authentication, numericID, permission)
	case KindDataset:
		return d.datasets.hasByID(ctx, authentication, numericID, permission)
	case KindProtocol:
		return d.protocols.hasByID(ctx, authentication, numericID, permission)
	case KindSample:
		return d.samples.hasByID(ctx, authentication, numericID, permission)
	default:
		logger.FromContext(ctx).Debug().Str("func", "HasByID").Str("kind", kind).
			Msg("permission check for unsupported entity kind")
		return false
	}
}

// coerceID converts the supported identifier representations to int64.
func coerceID(id any) (int64, bool) {
	switch v := id.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func typeName(subject any) string {
	if subject == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", subject)
}
