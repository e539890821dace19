package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/store"
)

// switchUserRequest is the JSON body of POST /api/switch-user.
type switchUserRequest struct {
	ID int64 `json:"id"`
}

// switchUser lets an administrator act as the account with the given
// identifier. The bearer token stays the same; only the session's
// authentication changes.
func (h *Handler) switchUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request switchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	session, ok := h.session(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	target, err := h.storages.UserRepository.FindByID(ctx, request.ID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		writeError(w, errCodeNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Err(err).Int64("target_id", request.ID).Msg("user lookup ended with error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := h.services.SwitchUser.SwitchUser(ctx, session, target); err != nil {
		switch {
		case errors.Is(err, security.ErrMissingArgument):
			writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		case errors.Is(err, security.ErrAccessDenied):
			writeError(w, errCodeAccessDenied, http.StatusForbidden)
		case errors.Is(err, security.ErrAccountDisabled):
			writeError(w, errCodeDisabled, http.StatusConflict)
		case errors.Is(err, security.ErrAccountLocked):
			writeError(w, errCodeLocked, http.StatusConflict)
		default:
			log.Err(err).Msg("unexpected error occurred during user switch")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// exitSwitchUser restores the administrator's own authentication.
func (h *Handler) exitSwitchUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := h.session(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.SwitchUser.ExitSwitchUser(ctx, session); err != nil {
		switch {
		case errors.Is(err, security.ErrCredentialsNotFound):
			writeError(w, errCodeAccessDenied, http.StatusForbidden)
		default:
			log.Err(err).Msg("unexpected error occurred during switch exit")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
