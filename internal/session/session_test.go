package session

import (
	"testing"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	return token
}

func TestIdentityFromToken(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{"mongo id", jwt.MapClaims{"_id": "u1"}, "u1"},
		{"id", jwt.MapClaims{"id": "u2", "sub": "other"}, "u2"},
		{"numeric", jwt.MapClaims{"userId": float64(17)}, "17"},
		{"subject", jwt.MapClaims{"sub": "u3"}, "u3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := IdentityFromToken(signedToken(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestIdentityFromToken_Errors(t *testing.T) {
	_, err := IdentityFromToken("not-a-token")
	assert.Error(t, err)

	_, err = IdentityFromToken(signedToken(t, jwt.MapClaims{"email": "ann@example.com"}))
	assert.ErrorIs(t, err, errNoIdentity)
}

func TestSession(t *testing.T) {
	s := New(signedToken(t, jwt.MapClaims{"_id": "u1"}))

	_, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "u1", s.UserID())

	s.SetProfile(model.Profile{ID: "u1", Name: "Ann"})
	assert.Equal(t, "Ann", s.Profile().Name)

	s.Close()
	_, ok = s.Token()
	assert.False(t, ok)
	assert.Empty(t, s.UserID())
}

func TestSession_Anonymous(t *testing.T) {
	s := New("")

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Empty(t, s.UserID())
}
