package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-program-api/internal/models"
	appErrors "github.com/noah-isme/teaching-program-api/pkg/errors"
)

func signToken(t *testing.T, secret string, claims *models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func teacherClaims(issuer string) *models.JWTClaims {
	now := time.Now().UTC()
	return &models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{AccessTokenSecret: "secret", Issuer: "teaching-program"})

	claims, err := svc.ValidateToken(signToken(t, "secret", teacherClaims("teaching-program")))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewAuthService(nil, AuthConfig{AccessTokenSecret: "secret", Issuer: "teaching-program"})

	cases := map[string]string{
		"wrong secret": signToken(t, "other", teacherClaims("teaching-program")),
		"wrong issuer": signToken(t, "secret", teacherClaims("elsewhere")),
		"garbage":      "not-a-token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
		})
	}

	expired := teacherClaims("teaching-program")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err := svc.ValidateToken(signToken(t, "secret", expired))
	assert.Error(t, err)

	anonymous := teacherClaims("teaching-program")
	anonymous.UserID = ""
	_, err = svc.ValidateToken(signToken(t, "secret", anonymous))
	assert.Error(t, err)
}
