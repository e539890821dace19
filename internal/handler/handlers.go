package handler

import (
	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/handler/grpc"
	"github.com/lanaseq/lanaseq/internal/handler/http"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/store"
)

// Handlers aggregates the transport handlers enabled by the server
// configuration. A handler is only constructed when the matching listen
// address is configured.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the transport handlers for every configured listen
// address. At least one of the HTTP and gRPC addresses must be set.
func NewHandlers(services *security.Services, storages *store.Storages, sessions *security.SessionStore, policies *security.PolicyRegistry, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, storages, sessions, policies, cfg.Auth, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
