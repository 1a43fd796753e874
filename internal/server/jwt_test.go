package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/config"
)

func testJWTService(secret, issuer string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		ExpirationHours: 1,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := testJWTService("secret-key", "resume-extractor")

	token, err := service.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "resume-extractor", claims.Issuer)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := testJWTService("secret-one", "resume-extractor").GenerateToken("admin")
	require.NoError(t, err)

	_, err = testJWTService("secret-two", "resume-extractor").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	token, err := testJWTService("secret-key", "someone-else").GenerateToken("admin")
	require.NoError(t, err)

	_, err = testJWTService("secret-key", "resume-extractor").ValidateToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	_, err := testJWTService("secret-key", "resume-extractor").ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := testJWTService("secret-key", "resume-extractor").ValidateToken("not.a.token")
	assert.Error(t, err)
}
