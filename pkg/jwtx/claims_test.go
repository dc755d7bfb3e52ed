package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/dash/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("s", jwtx.MinSecretLength))

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "dash",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("dash"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("other"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrNotYetValid)
	})
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, "dash")

	claims := jwtx.NewSessionClaims("user-1", "sess-1", []string{"roles:view"},
		time.Hour, "dash", "admin", "Administrator", 1, time.Now().UTC())

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "sess-1", got.SID)
	require.Equal(t, int64(1), got.RoleID)
	require.True(t, got.HasScope("roles:view"))
	require.False(t, got.HasScope("roles:delete"))
}

func TestVerifyRejects(t *testing.T) {
	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u", "s", nil, time.Hour, "dash", "u", "", 1, time.Now())
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		other := jwtx.NewVerifierHS256([]byte(strings.Repeat("x", jwtx.MinSecretLength)), "dash")
		_, err = other.Verify(token)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u", "s", nil, time.Minute, "dash", "u", "", 1,
			time.Now().Add(-time.Hour))
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		_, err = jwtx.NewVerifierHS256(testSecret, "dash").Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u", "s", nil, time.Hour, "elsewhere", "u", "", 1, time.Now())
		token, err := signer.Sign(claims)
		require.NoError(t, err)

		_, err = jwtx.NewVerifierHS256(testSecret, "dash").Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := jwtx.NewVerifierHS256(testSecret, "dash").Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestWeakSecretRejected(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
