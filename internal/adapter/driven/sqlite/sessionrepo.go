package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/recipefinder/internal/domain/port/driven"
)

// SessionKey is the key holding the active session's email.
const SessionKey = "loggedInUser"

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo implements the SessionStore port as a plain string under SessionKey.
type SessionRepo struct {
	kv driven.KeyValueStore
}

// NewSessionRepo creates a new SessionRepo on top of a key-value store.
func NewSessionRepo(kv driven.KeyValueStore) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// Load returns the persisted session email, or ("", nil) when there is none.
func (r *SessionRepo) Load(ctx context.Context) (string, error) {
	email, err := r.kv.Get(ctx, SessionKey)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return email, nil
}

// Save persists email as the active session.
func (r *SessionRepo) Save(ctx context.Context, email string) error {
	if err := r.kv.Set(ctx, SessionKey, email); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the session marker.
func (r *SessionRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
