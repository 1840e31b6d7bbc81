package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
	"github.com/ericfisherdev/recipefinder/internal/domain/port/driven"
)

// SessionService gates the application behind a minimal local credential
// check. It owns the single active session of the client process.
type SessionService struct {
	credentials driven.CredentialStore
	sessions    driven.SessionStore
	revalidate  bool
	logger      *slog.Logger

	mu      sync.RWMutex
	current *model.Identity
}

// NewSessionService creates a SessionService. When revalidate is true,
// RestoreSession only trusts a persisted marker whose email is still
// registered. A nil logger falls back to slog.Default().
func NewSessionService(
	credentials driven.CredentialStore,
	sessions driven.SessionStore,
	revalidate bool,
	logger *slog.Logger,
) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		credentials: credentials,
		sessions:    sessions,
		revalidate:  revalidate,
		logger:      logger,
	}
}

// Register creates a new identity and logs it in.
func (s *SessionService) Register(ctx context.Context, email, secret string) (model.Identity, error) {
	if err := validateCredentials(email, secret); err != nil {
		return model.Identity{}, err
	}

	identity := model.Identity{Email: email, Secret: secret}
	if err := s.credentials.Insert(ctx, identity); err != nil {
		return model.Identity{}, fmt.Errorf("register: %w", err)
	}

	if err := s.establish(ctx, identity); err != nil {
		return model.Identity{}, err
	}
	return identity, nil
}

// Login checks email and secret against the identity mapping and, on an
// exact match, makes it the active session.
func (s *SessionService) Login(ctx context.Context, email, secret string) (model.Identity, error) {
	if err := validateCredentials(email, secret); err != nil {
		return model.Identity{}, err
	}

	ok, err := s.credentials.Verify(ctx, email, secret)
	if err != nil {
		return model.Identity{}, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return model.Identity{}, model.ErrInvalidCredentials
	}

	identity := model.Identity{Email: email, Secret: secret}
	if err := s.establish(ctx, identity); err != nil {
		return model.Identity{}, err
	}
	return identity, nil
}

// Logout clears the active session. Calling it without a session is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// RestoreSession reads the persisted marker once at startup. It returns nil
// when no marker exists, or when revalidation is enabled and the email is no
// longer registered (the stale marker is then cleared).
func (s *SessionService) RestoreSession(ctx context.Context) (*model.Identity, error) {
	email, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if email == "" {
		return nil, nil
	}

	if s.revalidate {
		exists, err := s.credentials.Exists(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		if !exists {
			s.logger.Warn("discarding session marker for unknown identity", "email", email)
			if err := s.sessions.Clear(ctx); err != nil {
				return nil, fmt.Errorf("restore session: %w", err)
			}
			return nil, nil
		}
	}

	identity := &model.Identity{Email: email}

	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	return identity, nil
}

// Current returns the active identity, or nil when nobody is logged in.
// The returned identity never carries the secret.
func (s *SessionService) Current() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	return &model.Identity{Email: s.current.Email}
}

// IsAuthenticated reports whether a session is active.
func (s *SessionService) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *SessionService) establish(ctx context.Context, identity model.Identity) error {
	if err := s.sessions.Save(ctx, identity.Email); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.current = &model.Identity{Email: identity.Email}
	s.mu.Unlock()
	return nil
}
