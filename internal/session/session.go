// Package session holds the process-wide credential and identity. Two
// states exist: unauthenticated (no credential) and authenticated
// (credential held, identity resolved or resolving). Authenticated status
// derives from the cached identity, not from the credential string, so a
// failed resolution looks exactly like "not logged in" to gated views.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type authClient interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Session is the credential/identity holder. The mutex guards memory
// safety only: concurrent login/logout ordering is last-completion-wins,
// a documented race the remote service arbitrates.
type Session struct {
	auth      authClient
	store     TokenStore
	validator *validator.Validate
	logger    *zap.Logger

	mu        sync.RWMutex
	token     string
	user      *models.User
	resolving bool
}

// New builds a session, loading any durable credential. A load failure is
// logged and treated as no credential.
func New(auth authClient, store TokenStore, validate *validator.Validate, logger *zap.Logger) *Session {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{auth: auth, store: store, validator: validate, logger: logger}
	token, err := store.Load()
	if err != nil {
		logger.Warn("token_load_failed", zap.Error(err))
		return s
	}
	s.token = token
	return s
}

// Token implements transport.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasCredential reports whether a credential string is held, resolved or
// not. Gated views should use Authenticated instead.
func (s *Session) HasCredential() bool {
	return s.Token() != ""
}

// Authenticated is true iff an identity is currently cached.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Loading reports an in-flight identity resolution, so dependent views can
// defer instead of treating the session as logged out.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolving
}

// CurrentUser returns the cached identity, or nil.
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Login exchanges credentials for a token, persists it and seeds the
// identity from the response; no follow-up identity fetch is needed.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return s.exchange(ctx, creds, s.auth.Login)
}

// Register creates an account; the response shape and handling match Login.
func (s *Session) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	return s.exchange(ctx, creds, s.auth.Register)
}

func (s *Session) exchange(ctx context.Context, creds models.Credentials, call func(context.Context, models.Credentials) (*models.AuthResponse, error)) (*models.User, error) {
	if err := s.validator.Struct(creds); err != nil {
		return nil, appErrors.NewValidation(err, "invalid credentials")
	}
	resp, err := call(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(resp.Token); err != nil {
		// The credential still works for this process; only durability
		// is lost.
		s.logger.Warn("token_persist_failed", zap.Error(err))
	}
	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.resolving = false
	s.mu.Unlock()
	s.logger.Info("session_started", zap.Int64("user_id", user.ID))
	return &user, nil
}

// Resolve looks up the identity behind a durable credential, typically at
// process start. On failure the credential is kept and the error surfaced;
// only an explicit Logout evicts it.
func (s *Session) Resolve(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return nil
	}
	if s.user != nil {
		s.mu.Unlock()
		return nil
	}
	s.resolving = true
	s.mu.Unlock()

	user, err := s.auth.Me(ctx)

	s.mu.Lock()
	s.resolving = false
	if err == nil {
		s.user = user
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("identity_resolution_failed", zap.Error(err))
		return err
	}
	return nil
}

// Logout clears the durable credential and the cached identity. It is
// synchronous and never fails; a storage error only costs durability.
func (s *Session) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("token_clear_failed", zap.Error(err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.resolving = false
	s.mu.Unlock()
	s.logger.Info("session_ended")
}
