// Package auth persists the login session between runs and reports when
// its token has expired.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"

	"github.com/altinukshini/assetflow-tui/internal/model"
)

// ErrNoSession is returned by Load when nothing has been stored.
var ErrNoSession = errors.New("not logged in")

type Session struct {
	Token string     `yaml:"token"`
	Type  string     `yaml:"type,omitempty"`
	User  model.User `yaml:"user"`
}

func FromAuthResponse(resp *model.AuthResponse) Session {
	return Session{Token: resp.Token, Type: resp.Type, User: resp.User}
}

// ExpiresAt reads the exp claim without verifying the signature; the server
// remains the authority on validity. ok is false when the token carries no
// readable expiry.
func (s Session) ExpiresAt() (time.Time, bool) {
	if s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token is missing or past its exp claim.
// Tokens without an expiry are treated as live.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return true
	}
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return !now.Before(exp)
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Save writes the session readable only by the current user.
func (s *Store) Save(sess Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session succeeds.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
