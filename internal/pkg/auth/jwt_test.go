package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/tutorlink/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "jane@example.com",
		RoleType: models.RoleTutor,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testService(time.Hour)

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, 86400, refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, string(models.RoleTutor), claims.RoleType)
	assert.Equal(t, "test", claims.Issuer)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testService(-time.Minute)

	accessToken, _, _, _, err := svc.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	accessToken, _, _, _, err := testService(time.Hour).GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsEmpty(t *testing.T) {
	svc := testService(time.Hour)
	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "empty header", wantErr: ErrInvalidFormat},
		{name: "bearer prefix", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "raw token", header: "abc.def.ghi", want: "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
