package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := New("test-secret", 15*time.Minute)

	token, err := svc.GenerateToken(42, "moderator")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := New("secret-a", 15*time.Minute).GenerateToken(1, "user")
	require.NoError(t, err)

	_, err = New("secret-b", 15*time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	token, err := svc.GenerateToken(1, "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsForeignIssuer(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "user",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = New("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsUnexpectedMethod(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "user",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = New("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
