package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pass1234", hash)

	assert.True(t, PasswordMatches(hash, "pass1234"))
	assert.False(t, PasswordMatches(hash, "pass12345"))
}

func TestPasswordMatches_MalformedHash(t *testing.T) {
	assert.False(t, PasswordMatches("not-a-bcrypt-hash", "pass1234"))
	assert.False(t, PasswordMatches("", "pass1234"))
}

func TestGetUserIDFromContext_MissingValue(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetSessionIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetUserIDFromContext_RoundTrip(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(7))
	ctx = context.WithValue(ctx, SessionIDCtxKey, "session-7")

	id, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	sid, ok := GetSessionIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "session-7", sid)
}
