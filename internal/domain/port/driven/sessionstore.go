package driven

import "context"

// SessionStore defines the driven port for the persisted "logged in as"
// marker. It holds at most one email.
type SessionStore interface {
	// Load returns the persisted email. Returns ("", nil) when no session
	// marker exists.
	Load(ctx context.Context) (string, error)

	// Save persists email as the active session.
	Save(ctx context.Context, email string) error

	// Clear removes the marker. Clearing an absent marker is not an error.
	Clear(ctx context.Context) error
}
