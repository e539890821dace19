package ldap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T, handler http.Handler) Directory {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewDirectory(config.LDAP{
		Enabled:       true,
		URL:           srv.URL,
		IDAttribute:   "uid",
		MailAttribute: "mail",
		ObjectClass:   "person",
		Timeout:       2 * time.Second,
	}, logger.Nop())
}

func TestGetUsername_Found(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entries/by-email", r.URL.Path)
		assert.Equal(t, "person", r.URL.Query().Get("objectClass"))
		assert.Equal(t, "uid", r.URL.Query().Get("idAttribute"))
		assert.Equal(t, "jonh.smith@ircm.qc.ca", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(directoryEntry{ID: "robertf", Email: "jonh.smith@ircm.qc.ca"})
	}))

	username, err := dir.GetUsername(context.Background(), "jonh.smith@ircm.qc.ca")
	require.NoError(t, err)
	assert.Equal(t, "robertf", username)
}

func TestGetUsername_NotFound(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := dir.GetUsername(context.Background(), "ghost@ircm.qc.ca")
	assert.ErrorIs(t, err, ErrNotFoundInDirectory)
}

func TestGetUsername_GatewayError(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := dir.GetUsername(context.Background(), "jonh.smith@ircm.qc.ca")
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestGetEmail_Found(t *testing.T) {
	dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entries/by-id", r.URL.Path)
		assert.Equal(t, "robertf", r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(directoryEntry{ID: "robertf", Email: "jonh.smith@ircm.qc.ca"})
	}))

	email, err := dir.GetEmail(context.Background(), "robertf")
	require.NoError(t, err)
	assert.Equal(t, "jonh.smith@ircm.qc.ca", email)
}

func TestIsPasswordValid(t *testing.T) {
	tests := []struct {
		name   string
		status int
		valid  bool
		want   bool
	}{
		{name: "valid password", status: http.StatusOK, valid: true, want: true},
		{name: "invalid password", status: http.StatusOK, valid: false, want: false},
		{name: "gateway error", status: http.StatusBadGateway, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newTestDirectory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/entries/check-password", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(passwordCheck{Valid: tt.valid})
			}))

			got := dir.IsPasswordValid(context.Background(), "robertf", "pass1234")
			assert.Equal(t, tt.want, got)
		})
	}
}
