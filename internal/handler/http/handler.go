// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, session resolution, tracing and logging
// concerns are all handled at this layer before requests reach the security
// services and repositories.
package http

import (
	"net/http"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/internal/utils"
)

type Handler struct {
	services *security.Services
	storages *store.Storages
	sessions *security.SessionStore
	policies *security.PolicyRegistry
	authCfg  config.Auth

	logger *logger.Logger
}

func NewHandler(services *security.Services, storages *store.Storages, sessions *security.SessionStore, policies *security.PolicyRegistry, authCfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		storages: storages,
		sessions: sessions,
		policies: policies,
		authCfg:  authCfg,
		logger:   logger,
	}
}

// session resolves the security session of the request from the session
// identifier stored in the context by the auth middleware.
func (h *Handler) session(r *http.Request) (*security.Session, bool) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h.sessions.Get(sessionID)
}
