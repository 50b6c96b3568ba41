package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SergeyKozhin/events-sync/internal/model"
	"github.com/golang-jwt/jwt/v4"
)

var errNoIdentity = errors.New("token carries no user identity")

// identityClaims are checked in order when extracting the user id from a token.
var identityClaims = []string{"_id", "id", "userId", "user_id", "sub"}

// Session holds the credential and identity of the signed-in user for the
// lifetime of one client session.
type Session struct {
	mu      sync.RWMutex
	token   string
	profile model.Profile
}

func New(token string) *Session {
	s := &Session{token: token}
	if token != "" {
		if id, err := IdentityFromToken(token); err == nil {
			s.profile.ID = id
		}
	}

	return s
}

func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token != ""
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile.ID
}

func (s *Session) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profile
}

func (s *Session) SetProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = p
}

// Close drops the credential and identity. Later calls behave as signed out.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.profile = model.Profile{}
}

// IdentityFromToken reads the user id from the token claims. The signature is
// not verified, the server does that on every call.
func IdentityFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	for _, key := range identityClaims {
		v, ok := claims[key]
		if !ok {
			continue
		}
		switch id := v.(type) {
		case string:
			if id != "" {
				return id, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", id), nil
		}
	}

	return "", errNoIdentity
}
