package http

import (
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/models"
)

// requireCurrentPassword blocks principals whose password is expired.
// While the FORCE_CHANGE_PASSWORD authority is present, only sign-out and
// the password-change endpoint remain reachable; everything behind this
// middleware responds 403 with the expired-password discriminator.
func (h *Handler) requireCurrentPassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.session(r)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if session.Authentication().HasAuthority(models.ForceChangePasswordAuthority) {
			logger.FromRequest(r).Info().Str("uri", r.RequestURI).
				Msg("request blocked until the password is changed")
			writeError(w, errCodeExpiredPassword, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
