package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
	"github.com/ericfisherdev/recipefinder/internal/domain/port/driven"
)

// UsersKey is the key holding the serialized identity mapping.
const UsersKey = "users"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo implements the CredentialStore port as a single JSON object
// (email -> secret) stored under UsersKey. Secrets are stored in plaintext.
type CredentialRepo struct {
	kv driven.KeyValueStore
}

// NewCredentialRepo creates a new CredentialRepo on top of a key-value store.
func NewCredentialRepo(kv driven.KeyValueStore) *CredentialRepo {
	return &CredentialRepo{kv: kv}
}

// Insert adds the identity, or returns model.ErrAlreadyExists.
func (r *CredentialRepo) Insert(ctx context.Context, identity model.Identity) error {
	err := r.kv.Update(ctx, UsersKey, func(current string) (string, error) {
		users, err := decodeUsers(current)
		if err != nil {
			return "", err
		}
		if _, ok := users[identity.Email]; ok {
			return "", model.ErrAlreadyExists
		}
		users[identity.Email] = identity.Secret
		return encodeUsers(users)
	})
	if err != nil {
		return fmt.Errorf("insert identity %q: %w", identity.Email, err)
	}
	return nil
}

// Verify reports whether email is registered with exactly secret.
func (r *CredentialRepo) Verify(ctx context.Context, email, secret string) (bool, error) {
	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	stored, ok := users[email]
	return ok && stored == secret, nil
}

// Exists reports whether email is registered.
func (r *CredentialRepo) Exists(ctx context.Context, email string) (bool, error) {
	users, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := users[email]
	return ok, nil
}

func (r *CredentialRepo) load(ctx context.Context) (map[string]string, error) {
	raw, err := r.kv.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("load identities: %w", err)
	}
	return decodeUsers(raw)
}

// decodeUsers parses the identity blob. A missing blob is an empty mapping.
func decodeUsers(raw string) (map[string]string, error) {
	users := make(map[string]string)
	if raw == "" {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode identity mapping: %w", err)
	}
	if users == nil {
		users = make(map[string]string)
	}
	return users, nil
}

func encodeUsers(users map[string]string) (string, error) {
	data, err := json.Marshal(users)
	if err != nil {
		return "", fmt.Errorf("encode identity mapping: %w", err)
	}
	return string(data), nil
}
