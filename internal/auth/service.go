// ABOUTME: Mock authentication against one local demo account.
// ABOUTME: Sessions are fabricated tokens kept in preferences; nothing leaves the machine.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/prefs"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmail    = "demo@fitness.local"
	DemoPassword = "fitness"

	DefaultTTL   = 24 * time.Hour
	DefaultDelay = 500 * time.Millisecond
)

// ErrInvalidCredentials is returned by Login for an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Options tune the mock. Zero values take the defaults.
type Options struct {
	TTL   time.Duration
	Delay time.Duration
	// NoDelay disables the simulated network latency.
	NoDelay bool
	Now     func() time.Time
}

// Session describes the signed-in account.
type Session struct {
	Email     string
	User      string
	Token     string
	ExpiresAt time.Time
}

// Service is the mock auth service.
type Service struct {
	prefs *prefs.Store
	email string
	hash  []byte
	ttl   time.Duration
	delay time.Duration
	now   func() time.Time
	log   *logrus.Entry
}

// NewService creates the service over a preference store.
func NewService(p *prefs.Store, opts Options) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	s := &Service{
		prefs: p,
		email: DemoEmail,
		hash:  hash,
		ttl:   opts.TTL,
		delay: opts.Delay,
		now:   opts.Now,
		log:   logrus.WithField("component", "auth"),
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.delay <= 0 {
		s.delay = DefaultDelay
	}
	if opts.NoDelay {
		s.delay = 0
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// wait simulates a round trip; it returns early with ctx's error.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login checks the credentials and stores a fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != s.email || bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		s.log.WithField("email", email).Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Email:     email,
		User:      strings.SplitN(email, "@", 2)[0],
		Token:     "mock-" + uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	if err := s.prefs.SetBool(prefs.KeyIsLoggedIn, true); err != nil {
		return nil, err
	}
	if err := s.prefs.SetString(prefs.KeyUserEmail, sess.Email); err != nil {
		return nil, err
	}
	if err := s.prefs.SetString(prefs.KeyAuthUser, sess.User); err != nil {
		return nil, err
	}
	if err := s.prefs.SetString(prefs.KeyAuthToken, sess.Token); err != nil {
		return nil, err
	}
	if err := s.prefs.SetTime(prefs.KeyAuthExpires, sess.ExpiresAt); err != nil {
		return nil, err
	}

	s.log.WithField("email", email).Info("logged in")
	return sess, nil
}

// IsAuthenticated reports whether a stored session is present and unexpired.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	loggedIn, err := s.prefs.GetBool(prefs.KeyIsLoggedIn, false)
	if err != nil || !loggedIn {
		return false, err
	}
	token, err := s.prefs.GetString(prefs.KeyAuthToken)
	if err != nil || token == "" {
		return false, err
	}
	expires, ok, err := s.prefs.GetTime(prefs.KeyAuthExpires)
	if err != nil || !ok {
		return false, err
	}
	return s.now().Before(expires), nil
}

// ValidateToken simulates asking a server whether the stored token is still
// good. The answer comes from the local session.
func (s *Service) ValidateToken(ctx context.Context) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	return s.IsAuthenticated(ctx)
}

// Logout clears every auth key.
func (s *Service) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.prefs.Remove(
		prefs.KeyIsLoggedIn,
		prefs.KeyUserEmail,
		prefs.KeyAuthUser,
		prefs.KeyAuthToken,
		prefs.KeyAuthExpires,
	)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// CurrentEmail returns the signed-in email, or "" when signed out.
func (s *Service) CurrentEmail() (string, error) {
	return s.prefs.GetString(prefs.KeyUserEmail)
}

// CurrentSession returns the stored session, or nil when signed out.
func (s *Service) CurrentSession(ctx context.Context) (*Session, error) {
	ok, err := s.IsAuthenticated(ctx)
	if err != nil || !ok {
		return nil, err
	}
	sess := &Session{}
	if sess.Email, err = s.prefs.GetString(prefs.KeyUserEmail); err != nil {
		return nil, err
	}
	if sess.User, err = s.prefs.GetString(prefs.KeyAuthUser); err != nil {
		return nil, err
	}
	if sess.Token, err = s.prefs.GetString(prefs.KeyAuthToken); err != nil {
		return nil, err
	}
	if sess.ExpiresAt, _, err = s.prefs.GetTime(prefs.KeyAuthExpires); err != nil {
		return nil, err
	}
	return sess, nil
}
