package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/lanaseq/lanaseq/internal/mock"
	"github.com/lanaseq/lanaseq/internal/security"
	"github.com/lanaseq/lanaseq/internal/store"
	"github.com/lanaseq/lanaseq/internal/utils"
	"github.com/lanaseq/lanaseq/models"
)

// testAuthCfg is the token configuration every handler under test runs with.
var testAuthCfg = config.Auth{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "lanaseq",
	TokenDuration: time.Hour,
}

// handlerFixture wires a Handler over gomock repositories with real security
// services, so requests exercise the full authentication and authorization
// path.
type handlerFixture struct {
	router   *chi.Mux
	sessions *security.SessionStore

	users     *mock.MockUserRepository
	datasets  *mock.MockDatasetRepository
	protocols *mock.MockProtocolRepository
	samples   *mock.MockSampleRepository
}

func newHandlerFixture(t *testing.T, ctrl *gomock.Controller) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		users:     mock.NewMockUserRepository(ctrl),
		datasets:  mock.NewMockDatasetRepository(ctrl),
		protocols: mock.NewMockProtocolRepository(ctrl),
		samples:   mock.NewMockSampleRepository(ctrl),
	}
	storages := &store.Storages{
		UserRepository:     f.users,
		DatasetRepository:  f.datasets,
		ProtocolRepository: f.protocols,
		SampleRepository:   f.samples,
	}

	cfg := &config.StructuredConfig{
		Auth: testAuthCfg,
		Security: config.Security{
			LockAttempts:        config.DefaultLockAttempts,
			LockDuration:        config.DefaultLockDuration,
			DisableSignAttempts: config.DefaultDisableSignAttempts,
		},
	}

	policies := security.NewPolicyRegistry()
	services, err := security.NewServices(storages, nil, cfg, policies, nil, logger.Nop())
	require.NoError(t, err)

	f.sessions = security.NewSessionStore()
	handler := NewHandler(services, storages, f.sessions, policies, cfg.Auth, logger.Nop())
	f.router = handler.Init()

	return f
}

// signedInRequest builds a request carrying a valid bearer token for a fresh
// session holding the given authentication.
func (f *handlerFixture) signedInRequest(t *testing.T, auth *security.Authentication, method, target, body string) *http.Request {
	t.Helper()

	session := f.sessions.Create(auth)
	token, err := utils.GenerateJWTToken(testAuthCfg.TokenIssuer, auth.UserID, session.ID(),
		testAuthCfg.TokenDuration, testAuthCfg.TokenSignKey)
	require.NoError(t, err)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	return req
}

func (f *handlerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func userAuthentication(id int64, roles ...string) *security.Authentication {
	return &security.Authentication{
		UserID:      id,
		Email:       fmt.Sprintf("user%d@lab.test", id),
		Authorities: append([]string{models.RoleUser}, roles...),
	}
}
