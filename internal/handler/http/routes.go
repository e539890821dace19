package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lanaseq/lanaseq/models"
)

// Endpoint policy names consulted through the authorization façade. Routes
// without a registered policy are open to every authenticated principal.
const (
	policyUsersCreate = "users.create"
	policySwitchUser  = "switch-user"
)

func (h *Handler) Init() *chi.Mux {
	h.policies.Register(policyUsersCreate, models.RoleManager, models.RoleAdmin)
	h.policies.Register(policySwitchUser, models.RoleAdmin)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/sign-in", h.signIn)
	})

	// routes that stay reachable while the password is expired
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/sign-out", h.signOut)
		r.Post("/api/password", h.changePassword)
	})

	// routes requiring a fully usable principal
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireCurrentPassword)

		r.Post("/api/switch-user", h.requirePolicy(policySwitchUser, h.switchUser))
		r.Post("/api/switch-user/exit", h.exitSwitchUser)

		r.Get("/api/users/{id}", h.getUser)
		r.Post("/api/users", h.requirePolicy(policyUsersCreate, h.createUser))
		r.Put("/api/users/{id}", h.updateUser)

		r.Get("/api/datasets", h.listDatasets)
		r.Get("/api/datasets/{id}", h.getDataset)
		r.Post("/api/datasets", h.createDataset)
		r.Put("/api/datasets/{id}", h.updateDataset)

		r.Get("/api/protocols/{id}", h.getProtocol)
		r.Post("/api/protocols", h.createProtocol)
		r.Put("/api/protocols/{id}", h.updateProtocol)

		r.Get("/api/samples/{id}", h.getSample)
		r.Post("/api/samples", h.createSample)
		r.Put("/api/samples/{id}", h.updateSample)
	})

	return router
}
