package http

import (
	"context"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/utils"
)

// auth is an HTTP middleware that enforces token-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// it, and resolves the security session referenced by the token's session
// identifier. On success the account and session identifiers are stored in
// the request context before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// absent or malformed, the token does not verify, or the referenced session
// no longer exists — e.g. after a restart or sign-out. An authenticated
// route never sees an anonymous session.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.authCfg.TokenSignKey, h.authCfg.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		session, ok := h.sessions.Get(token.SessionID)
		if !ok || session.Authentication() == nil {
			log.Err(ErrUnknownSession).Str("session_id", token.SessionID).Send()
			http.Error(w, ErrUnknownSession.Error(), http.StatusUnauthorized)
			return
		}

		// Store the identifiers in the context so that downstream handlers
		// can resolve the session without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, token.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
