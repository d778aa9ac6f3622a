// ABOUTME: Typed preference store over a byte key-value backend.
// ABOUTME: Holds the first-run flag and the mock auth session.
package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Preference keys.
const (
	KeyFirstTimeUser = "first_time_user"
	KeyIsLoggedIn    = "IsLoggedIn"
	KeyUserEmail     = "UserEmail"
	KeyAuthUser      = "auth_user"
	KeyAuthToken     = "auth_token"
	KeyAuthExpires   = "auth_expires"
)

// Store reads and writes typed preferences.
type Store struct {
	b Backend
}

// New wraps a backend.
func New(b Backend) *Store {
	return &Store{b: b}
}

// Has reports whether key is set.
func (s *Store) Has(key string) (bool, error) {
	_, err := s.b.Get([]byte(key))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return true, nil
}

// GetString returns the value of key, or "" when unset.
func (s *Store) GetString(key string) (string, error) {
	v, err := s.b.Get([]byte(key))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(v), nil
}

// SetString stores value under key.
func (s *Store) SetString(key, value string) error {
	if err := s.b.Set([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// GetBool returns the value of key, or def when unset. A stored value that
// does not parse as a bool is an error.
func (s *Store) GetBool(key string, def bool) (bool, error) {
	v, err := s.b.Get([]byte(key))
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read %s: %w", key, err)
	}
	b, err := strconv.ParseBool(string(v))
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

// SetBool stores value under key.
func (s *Store) SetBool(key string, value bool) error {
	return s.SetString(key, strconv.FormatBool(value))
}

// GetTime returns the value of key and whether it was set.
func (s *Store) GetTime(key string) (time.Time, bool, error) {
	v, err := s.GetString(key)
	if err != nil || v == "" {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return t, true, nil
}

// SetTime stores t under key in UTC.
func (s *Store) SetTime(key string, t time.Time) error {
	return s.SetString(key, t.UTC().Format(time.RFC3339Nano))
}

// Remove deletes keys. Missing keys are ignored.
func (s *Store) Remove(keys ...string) error {
	for _, key := range keys {
		if err := s.b.Delete([]byte(key)); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.b.Close()
}
