package ldap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lanaseq/lanaseq/internal/config"
	"github.com/lanaseq/lanaseq/internal/logger"
)

// restDirectory is the REST directory-gateway implementation of [Directory].
// The gateway translates attribute searches to the underlying directory; the
// attribute and object-class names are forwarded on every request so that a
// single gateway can serve differently-shaped directories.
type restDirectory struct {
	client        *resty.Client
	idAttribute   string
	mailAttribute string
	objectClass   string
	logger        *logger.Logger
}

// directoryEntry is the gateway's response shape for entry searches.
type directoryEntry struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// passwordCheck is the gateway's response shape for credential checks.
type passwordCheck struct {
	Valid bool `json:"valid"`
}

// NewDirectory constructs a [Directory] backed by the REST directory gateway
// configured in cfg. The caller is expected to have validated cfg.URL.
func NewDirectory(cfg config.LDAP, log *logger.Logger) Directory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(timeout)

	return &restDirectory{
		client:        cli,
		idAttribute:   cfg.IDAttribute,
		mailAttribute: cfg.MailAttribute,
		objectClass:   cfg.ObjectClass,
		logger:        log,
	}
}

// GetUsername resolves the directory identifier for the given email by
// searching entries of the configured object class on the mail attribute.
func (d *restDirectory) GetUsername(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	var entry directoryEntry
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"objectClass":   d.objectClass,
			"idAttribute":   d.idAttribute,
			"mailAttribute": d.mailAttribute,
			"email":         email,
		}).
		SetResult(&entry).
		Get("/entries/by-email")
	if err != nil {
		log.Err(err).Str("email", email).Msg("directory gateway request failed")
		return "", fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return entry.ID, nil
	case http.StatusNotFound:
		return "", ErrNotFoundInDirectory
	default:
		log.Error().Int("status", resp.StatusCode()).Str("email", email).Msg("unexpected directory gateway status")
		return "", fmt.Errorf("%w: status %d", ErrDirectoryUnavailable, resp.StatusCode())
	}
}

// GetEmail resolves the email of the entry with the given directory
// identifier.
func (d *restDirectory) GetEmail(ctx context.Context, username string) (string, error) {
	log := logger.FromContext(ctx)

	var entry directoryEntry
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"objectClass":   d.objectClass,
			"idAttribute":   d.idAttribute,
			"mailAttribute": d.mailAttribute,
			"id":            username,
		}).
		SetResult(&entry).
		Get("/entries/by-id")
	if err != nil {
		log.Err(err).Str("username", username).Msg("directory gateway request failed")
		return "", fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return entry.Email, nil
	case http.StatusNotFound:
		return "", ErrNotFoundInDirectory
	default:
		log.Error().Int("status", resp.StatusCode()).Str("username", username).Msg("unexpected directory gateway status")
		return "", fmt.Errorf("%w: status %d", ErrDirectoryUnavailable, resp.StatusCode())
	}
}

// IsPasswordValid asks the gateway to bind as the given entry with the
// presented password. Any failure — transport, unexpected status, negative
// answer — reports false; the caller treats it as a plain credential
// mismatch.
func (d *restDirectory) IsPasswordValid(ctx context.Context, username, password string) bool {
	log := logger.FromContext(ctx)

	var check passwordCheck
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"idAttribute": d.idAttribute,
			"id":          username,
			"password":    password,
		}).
		SetResult(&check).
		Post("/entries/check-password")
	if err != nil {
		log.Err(err).Str("username", username).Msg("directory gateway password check failed")
		return false
	}

	if resp.StatusCode() != http.StatusOK {
		log.Error().Int("status", resp.StatusCode()).Str("username", username).Msg("unexpected directory gateway status")
		return false
	}

	return check.Valid
}
