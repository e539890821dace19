package http

import (
	"encoding/json"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/utils"
)

// changePasswordRequest is the JSON body of POST /api/password.
type changePasswordRequest struct {
	Password string `json:"password"`
}

// changePassword replaces the current principal's password, clears the
// expired-password flag and reloads the session authorities so that the
// FORCE_CHANGE_PASSWORD restriction lifts immediately.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}
	if request.Password == "" {
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	session, ok := h.session(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	authentication := session.Authentication()

	user, err := h.storages.UserRepository.FindByID(ctx, authentication.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", authentication.UserID).Msg("user lookup ended with error")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Msg("hashing password failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	user.HashedPassword = hash
	user.ExpiredPassword = false
	if _, err := h.storages.UserRepository.Save(ctx, user); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("saving user ended with error")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err := h.services.Authorization.ReloadAuthorities(ctx, session); err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("reloading authorities ended with error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("password changed")
	w.WriteHeader(http.StatusNoContent)
}
