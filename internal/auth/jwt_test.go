package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuard_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGuard("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	guard, err := NewGuard("super-secret", time.Hour)
	require.NoError(t, err)

	token, err := guard.Issue("u1")
	require.NoError(t, err)

	userID, err := guard.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	guard, err := NewGuard("super-secret", time.Hour)
	require.NoError(t, err)
	guard.ttl = -time.Second

	token, err := guard.Issue("u1")
	require.NoError(t, err)

	_, err = guard.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewGuard("right-secret", time.Hour)
	require.NoError(t, err)
	verifier, err := NewGuard("wrong-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	guard, err := NewGuard("super-secret", time.Hour)
	require.NoError(t, err)

	token, err := guard.Issue("u1")
	require.NoError(t, err)

	// Swap the payload segment for one from another token; the signature no
	// longer matches even though the payload itself is well formed.
	other, err := guard.Issue("u2")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = guard.Verify(tampered)
	assert.Error(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	guard, err := NewGuard("super-secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := guard.Verify(token)
		assert.Error(t, err, "token %q must not verify", token)
	}
}
