package http

import (
	"errors"
	"net/http"

	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/internal/utils"
)

var errorStatusMap = map[error]int{
	security.ErrBadCredentials:      http.StatusUnauthorized,
	security.ErrAccountDisabled:     http.StatusUnauthorized,
	security.ErrAccountLocked:       http.StatusUnauthorized,
	security.ErrAccessDenied:        http.StatusForbidden,
	security.ErrCredentialsNotFound: http.StatusForbidden,
	security.ErrUserNotFound:        http.StatusNotFound,
	security.ErrMissingArgument:     http.StatusBadRequest,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrDatasetNotFound:    http.StatusNotFound,
	store.ErrProtocolNotFound:   http.StatusNotFound,
	store.ErrSampleNotFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Sign-in failure discriminators exposed to clients. The "fail" code covers
// both unknown accounts and wrong passwords.
const (
	errCodeFail            = "fail"
	errCodeDisabled        = "disabled"
	errCodeLocked          = "locked"
	errCodeAccessDenied    = "access_denied"
	errCodeExpiredPassword = "expired_password"
	errCodeNotFound        = "not_found"
	errCodeInvalidRequest  = "invalid_request"
)

// writeError writes a JSON error body of the form {"error": code} with the
// given status code.
func writeError(w http.ResponseWriter, code string, statusCode int) {
	_, _ = utils.WriteJSON(w, map[string]string{"error": code}, statusCode)
}
