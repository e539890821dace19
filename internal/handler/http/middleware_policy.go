package http

import (
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
)

// requirePolicy gates a route behind the named endpoint policy. Principals
// that the authorization façade refuses receive 403 with the access-denied
// discriminator.
func (h *Handler) requirePolicy(policy string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.session(r)
		if !h.services.Authorization.IsAuthorized(session, policy) {
			logger.FromRequest(r).Info().Str("policy", policy).
				Msg("request refused by endpoint policy")
			writeError(w, errCodeAccessDenied, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
