package domain

import "context"

// Session is a single timed work entry. A nil EndUTC means the session is
// running; the ledger guarantees at most one such row exists at any time.
type Session struct {
	ID          int64
	CategoryID  *int64
	Description string
	StartUTC    string
	EndUTC      *string
	CreatedUTC  string
	UpdatedUTC  string
}

// Running reports whether the session has no end time yet.
func (s Session) Running() bool {
	return s.EndUTC == nil
}

type SessionRepository interface {
	// Create inserts a new session and returns it with its assigned ID.
	// Returns ErrActiveSessionExists when the row would be a second running
	// session (enforced by a partial unique index at the storage layer).
	Create(ctx context.Context, s *Session) (*Session, error)
	GetByID(ctx context.Context, id int64) (*Session, error)
	// GetActive returns the session with a null end time, or
	// ErrNoActiveSession if none is running.
	GetActive(ctx context.Context) (*Session, error)
	// ListAll returns every session ordered by start_utc descending.
	ListAll(ctx context.Context) ([]Session, error)
	// Update replaces all mutable fields. Subject to the same running-session
	// constraint as Create when EndUTC is nil.
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id int64) error
}
