package application_test

import (
	"context"
	"sync"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// memCredentialStore is an in-memory driven.CredentialStore.
type memCredentialStore struct {
	mu       sync.Mutex
	users    map[string]string
	err      error
	inserted int
	verified int
}

func newMemCredentialStore() *memCredentialStore {
	return &memCredentialStore{users: make(map[string]string)}
}

func (m *memCredentialStore) Insert(_ context.Context, identity model.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[identity.Email]; ok {
		return model.ErrAlreadyExists
	}
	m.users[identity.Email] = identity.Secret
	m.inserted++
	return nil
}

func (m *memCredentialStore) Verify(_ context.Context, email, secret string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verified++
	if m.err != nil {
		return false, m.err
	}
	stored, ok := m.users[email]
	return ok && stored == secret, nil
}

func (m *memCredentialStore) Exists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[email]
	return ok, nil
}

// memSessionStore is an in-memory driven.SessionStore.
type memSessionStore struct {
	mu      sync.Mutex
	email   string
	saves   int
	clears  int
	saveErr error
}

func (m *memSessionStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, nil
}

func (m *memSessionStore) Save(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.email = email
	m.saves++
	return nil
}

func (m *memSessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.email = ""
	m.clears++
	return nil
}

// stubRecipeModel is a driven.RecipeModel returning a canned reply.
type stubRecipeModel struct {
	reply   string
	err     error
	calls   int
	prompts []string
	schemas []*model.Schema
}

func (s *stubRecipeModel) Generate(_ context.Context, prompt string, schema *model.Schema) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.schemas = append(s.schemas, schema)
	return s.reply, s.err
}
