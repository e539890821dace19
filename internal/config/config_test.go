package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultLockAttempts, cfg.Security.LockAttempts)
	assert.Equal(t, DefaultLockDuration, cfg.Security.LockDuration)
	assert.Equal(t, DefaultDisableSignAttempts, cfg.Security.DisableSignAttempts)
	assert.Equal(t, DefaultTokenDuration, cfg.Auth.TokenDuration)
}

func TestValidate_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name     string
		security Security
		wantErr  error
	}{
		{
			name:     "valid policy",
			security: Security{LockAttempts: 5, LockDuration: 3 * time.Minute, DisableSignAttempts: 20},
			wantErr:  nil,
		},
		{
			name:     "zero lock attempts",
			security: Security{LockAttempts: 0, LockDuration: 3 * time.Minute, DisableSignAttempts: 20},
			wantErr:  ErrInvalidSecurityConfigs,
		},
		{
			name:     "zero lock duration",
			security: Security{LockAttempts: 5, LockDuration: 0, DisableSignAttempts: 20},
			wantErr:  ErrInvalidSecurityConfigs,
		},
		{
			name:     "disable threshold below lock threshold",
			security: Security{LockAttempts: 5, LockDuration: 3 * time.Minute, DisableSignAttempts: 5},
			wantErr:  ErrInvalidSecurityConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StructuredConfig{Security: tt.security}
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_LDAPEnabledRequiresURL(t *testing.T) {
	cfg := &StructuredConfig{
		Security: Security{LockAttempts: 5, LockDuration: time.Minute, DisableSignAttempts: 20},
		LDAP:     LDAP{Enabled: true},
	}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidLDAPConfigs)

	cfg.LDAP.URL = "https://directory.example.org"
	assert.NoError(t, cfg.validate())
}

func TestParseJSON_AllSections(t *testing.T) {
	raw := map[string]any{
		"auth": map[string]any{
			"token_sign_key": "secret",
			"token_issuer":   "lanaseq",
			"token_duration": "12h",
		},
		"security": map[string]any{
			"lock_attempts":         7,
			"lock_duration":         "5m",
			"disable_sign_attempts": 30,
		},
		"ldap": map[string]any{
			"enabled":        true,
			"url":            "https://directory.example.org",
			"id_attribute":   "uid",
			"mail_attribute": "mail",
			"object_class":   "person",
			"timeout":        "10s",
		},
		"server": map[string]any{
			"http_address": "localhost:8080",
		},
	}

	data, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 7, cfg.Security.LockAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Security.LockDuration)
	assert.Equal(t, 30, cfg.Security.DisableSignAttempts)
	assert.True(t, cfg.LDAP.Enabled)
	assert.Equal(t, "uid", cfg.LDAP.IDAttribute)
	assert.Equal(t, 10*time.Second, cfg.LDAP.Timeout)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{name: "localhost", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:abc", wantErr: true},
		{name: "negative port", input: "localhost:-1", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestBuilder_MergePriority(t *testing.T) {
	// Earlier sources win over later ones: a value present in the first
	// config must not be overridden by the defaults appended last.
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Security: Security{LockAttempts: 9, LockDuration: time.Minute, DisableSignAttempts: 50},
	})
	cfg, err := b.withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Security.LockAttempts)
	assert.Equal(t, time.Minute, cfg.Security.LockDuration)
	assert.Equal(t, 50, cfg.Security.DisableSignAttempts)
}
