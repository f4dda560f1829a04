// Package session owns one client's authenticated user and bearer token.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"docportal/internal/model"
	"docportal/internal/storage"
)

const (
	// TokenCookie is the readable cookie carrying the bearer token.
	TokenCookie = "token"
	// TokenCookieMaxAge is the fixed lifetime of the token cookie.
	TokenCookieMaxAge = 24 * time.Hour
)

// ErrPartialSession is returned when Set receives a user without a token or the reverse.
var ErrPartialSession = errors.New("session requires both user and token")

// CookieWriter receives cookies for the current response. *fiber.Ctx satisfies it.
type CookieWriter interface {
	Cookie(cookie *fiber.Cookie)
}

// Store holds one client's session. Reads are shared; writes happen only
// through Set and Clear, which the auth gateway calls.
type Store struct {
	clientID     string
	storage      storage.Storage
	log          *zap.Logger
	cookieSecure bool
	now          func() time.Time

	mu         sync.RWMutex
	session    model.Session
	loading    bool
	rehydrated bool
}

// Option customizes a Store.
type Option func(*Store)

// WithSecureCookie marks the token cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(s *Store) { s.cookieSecure = secure }
}

// WithClock overrides the clock used for cookie expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store for the client. It reports loading until Rehydrate runs.
func NewStore(clientID string, st storage.Storage, log *zap.Logger, opts ...Option) *Store {
	s := &Store{
		clientID: clientID,
		storage:  st,
		log:      log.With(zap.String("client_id", clientID)),
		now:      time.Now,
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClientID returns the id this store is scoped to.
func (s *Store) ClientID() string { return s.clientID }

// Rehydrate restores the session from durable storage once. A stored pair is
// trusted without asking the backend; a stale token surfaces on the next call.
// A partial or unreadable pair is treated as logged out.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rehydrated {
		return nil
	}

	vals, err := s.storage.Load(ctx, s.clientID)
	if err != nil {
		// Stay in the loading state so a later request can retry.
		return fmt.Errorf("load session: %w", err)
	}
	s.rehydrated = true
	s.loading = false

	token, user := vals[storage.KeyToken], vals[storage.KeyUser]
	if token == "" || user == "" {
		return nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(user), &u); err != nil {
		s.log.Warn("session_user_corrupt", zap.Error(err))
		return nil
	}
	s.session = model.Session{User: &u, Token: token}
	return nil
}

// Current returns a copy of the session.
func (s *Store) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Authenticated reports whether a complete session is held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Complete()
}

// Loading reports whether rehydration has yet to finish.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Set replaces the whole session, persists it and writes the token cookie.
func (s *Store) Set(ctx context.Context, w CookieWriter, sess model.Session) error {
	if !sess.Complete() {
		return ErrPartialSession
	}
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, s.clientID, map[string]string{
		storage.KeyToken: sess.Token,
		storage.KeyUser:  string(user),
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	u := *sess.User
	s.session = model.Session{User: &u, Token: sess.Token}
	s.loading = false
	s.rehydrated = true

	w.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(TokenCookieMaxAge.Seconds()),
		Expires:  s.now().Add(TokenCookieMaxAge),
		Secure:   s.cookieSecure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return nil
}

// Clear drops the session, removes the stored keys and expires the cookie.
// Memory and cookie are cleared even when storage removal fails; that error is returned.
func (s *Store) Clear(ctx context.Context, w CookieWriter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = model.Session{}
	s.loading = false
	s.rehydrated = true

	w.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   s.cookieSecure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	if err := s.storage.Remove(ctx, s.clientID, storage.KeyToken, storage.KeyUser); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
