package driven

import (
	"context"

	"github.com/ericfisherdev/recipefinder/internal/domain/model"
)

// CredentialStore defines the driven port for the registered identity
// directory (email -> secret). Callers never see how the mapping is persisted,
// so the local plaintext backing can be swapped for a hashed server-side one.
type CredentialStore interface {
	// Insert adds a new identity. Returns model.ErrAlreadyExists if the email
	// is already registered; the stored secret is left unchanged.
	Insert(ctx context.Context, identity model.Identity) error

	// Verify reports whether email is registered with exactly secret.
	Verify(ctx context.Context, email, secret string) (bool, error)

	// Exists reports whether email is registered.
	Exists(ctx context.Context, email string) (bool, error)
}
