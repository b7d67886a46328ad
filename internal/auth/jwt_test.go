package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifier_RoundTrip(t *testing.T) {
	v := auth.NewVerifier(testSecret, "https://auth.example.com")
	userID := uuid.New()

	token, err := v.Issue(userID, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifier_Expired(t *testing.T) {
	v := auth.NewVerifier(testSecret, "")
	token, err := v.Issue(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_WrongSecret(t *testing.T) {
	token, err := auth.NewVerifier("another-secret-another-secret-xx", "").Issue(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_WrongIssuer(t *testing.T) {
	token, err := auth.NewVerifier(testSecret, "someone-else").Issue(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "https://auth.example.com").Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_NonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewVerifier(testSecret, "").Verify(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifier_EmptyToken(t *testing.T) {
	_, err := auth.NewVerifier(testSecret, "").Verify("")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUserID_Context(t *testing.T) {
	_, ok := auth.UserID(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := auth.UserID(auth.WithUserID(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)
}
