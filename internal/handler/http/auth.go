package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/utils"
)

// signInRequest is the JSON body of POST /api/sign-in.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signIn validates the submitted credentials, opens a security session and
// returns the signed bearer token in the "Authorization" header along with
// the account profile in the body.
//
// Failed sign-ins respond 401 with a JSON discriminator telling the client
// why: "fail" for wrong credentials, "disabled" and "locked" for accounts
// that cannot sign in at all.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request signInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, errCodeInvalidRequest, http.StatusBadRequest)
		return
	}

	user, err := h.services.Authenticator.Authenticate(ctx, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrBadCredentials):
			log.Info().Str("email", request.Email).Msg("sign-in failed")
			writeError(w, errCodeFail, http.StatusUnauthorized)
			return
		case errors.Is(err, security.ErrAccountDisabled):
			log.Info().Str("email", request.Email).Msg("sign-in for disabled account")
			writeError(w, errCodeDisabled, http.StatusUnauthorized)
			return
		case errors.Is(err, security.ErrAccountLocked):
			log.Info().Str("email", request.Email).Msg("sign-in for locked account")
			writeError(w, errCodeLocked, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during sign-in")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	authentication, err := h.services.UserDetails.Load(ctx, user.Email)
	if err != nil {
		log.Err(err).Msg("loading user details failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	session := h.sessions.Create(authentication)
	token, err := utils.GenerateJWTToken(h.authCfg.TokenIssuer, user.ID, session.ID(),
		h.authCfg.TokenDuration, h.authCfg.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.sessions.Delete(session.ID())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// signOut discards the security session referenced by the bearer token.
// The token itself becomes useless because its session no longer resolves.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, ok := h.session(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.sessions.Delete(session.ID())
	log.Info().Str("session_id", session.ID()).Msg("signed out")

	w.WriteHeader(http.StatusNoContent)
}
