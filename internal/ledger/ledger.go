// Package ledger owns the session lifecycle rules: the single-active-session
// invariant, time-window validation on edits, and derived duration.
package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/jsavoy93/time-tracker/internal/domain"
	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
	"github.com/jsavoy93/time-tracker/internal/metrics"
)

// NoCategoryLabel is rendered for sessions without a resolvable category.
const NoCategoryLabel = "(No Category)"

// CategoryResolver is the slice of the category store the ledger needs:
// active-only resolution for validation, any-state resolution for display.
type CategoryResolver interface {
	ResolveActive(ctx context.Context, id int64) (*domain.Category, error)
	ResolveAny(ctx context.Context, id int64) (*domain.Category, error)
}

// Entry is a session joined with its resolved category name and rendered
// duration, ready for the session table and the CSV export.
type Entry struct {
	domain.Session
	CategoryName string
	Duration     string
}

type Ledger struct {
	sessions   domain.SessionRepository
	categories CategoryResolver
	clock      clockwork.Clock

	// mu serializes the check-then-act sequences in Start and Edit. The
	// partial unique index on sessions(end_utc IS NULL) backstops the
	// invariant against out-of-band writers.
	mu sync.Mutex
}

func New(sessions domain.SessionRepository, categories CategoryResolver, clock clockwork.Clock) *Ledger {
	return &Ledger{
		sessions:   sessions,
		categories: categories,
		clock:      clock,
	}
}

// Start creates a new running session stamped with the current instant.
// Fails with a conflict if any session is already running, and with not-found
// if the category reference does not resolve to an active category.
func (l *Ledger) Start(ctx context.Context, categoryID *int64, description string) (sess *domain.Session, err error) {
	defer func() { metrics.RecordLedgerOp("start", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.sessions.GetActive(ctx); err == nil {
		return nil, apperrors.ConflictError("a session is already running, stop it first")
	} else if !errors.Is(err, domain.ErrNoActiveSession) {
		return nil, apperrors.InternalError("failed to check for a running session", err)
	}

	if categoryID != nil {
		if _, err := l.categories.ResolveActive(ctx, *categoryID); err != nil {
			return nil, err
		}
	}

	now := domain.FormatTimestamp(l.clock.Now())
	sess, err = l.sessions.Create(ctx, &domain.Session{
		CategoryID:  categoryID,
		Description: description,
		StartUTC:    now,
		CreatedUTC:  now,
		UpdatedUTC:  now,
	})
	if errors.Is(err, domain.ErrActiveSessionExists) {
		return nil, apperrors.ConflictError("a session is already running, stop it first")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to create session", err)
	}

	metrics.ActiveSessionGauge.Set(1)
	return sess, nil
}

// Stop closes the running session at the current instant.
func (l *Ledger) Stop(ctx context.Context) (sess *domain.Session, err error) {
	defer func() { metrics.RecordLedgerOp("stop", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	sess, err = l.sessions.GetActive(ctx)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return nil, apperrors.NotFoundError("no active session to stop")
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load the running session", err)
	}

	now := domain.FormatTimestamp(l.clock.Now())
	sess.EndUTC = &now
	sess.UpdatedUTC = now

	if err := l.sessions.Update(ctx, sess); err != nil {
		return nil, apperrors.InternalError("failed to stop session", err)
	}

	metrics.ActiveSessionGauge.Set(0)
	return sess, nil
}

// Edit replaces the mutable fields of a session. Start and end inputs are
// parsed leniently and stored in canonical form; a non-empty end must be
// strictly after the start. An edit that would leave a second session running
// is rejected.
func (l *Ledger) Edit(ctx context.Context, id int64, categoryID *int64, description, startRaw string, endRaw *string) (sess *domain.Session, err error) {
	defer func() { metrics.RecordLedgerOp("edit", err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	sess, err = l.sessions.GetByID(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, apperrors.NotFoundError("session not found").WithContext("session_id", id)
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load session", err)
	}

	start, err := domain.ParseTimestamp(startRaw)
	if err != nil {
		return nil, apperrors.ValidationError("invalid start time").WithContext("start_utc", startRaw)
	}

	var end *string
	if endRaw != nil {
		parsed, err := domain.ParseTimestamp(*endRaw)
		if err != nil {
			return nil, apperrors.ValidationError("invalid end time").WithContext("end_utc", *endRaw)
		}
		if !parsed.After(start) {
			return nil, apperrors.ValidationError("end time must be after start time")
		}
		formatted := domain.FormatTimestamp(parsed)
		end = &formatted
	} else {
		// The edit leaves this session running; reject it while a different
		// session holds the active slot.
		if active, err := l.sessions.GetActive(ctx); err == nil && active.ID != id {
			return nil, apperrors.ConflictError("another session is already running")
		} else if err != nil && !errors.Is(err, domain.ErrNoActiveSession) {
			return nil, apperrors.InternalError("failed to check for a running session", err)
		}
	}

	if categoryID != nil {
		if _, err := l.categories.ResolveActive(ctx, *categoryID); err != nil {
			return nil, err
		}
	}

	wasRunning := sess.Running()

	sess.CategoryID = categoryID
	sess.Description = description
	sess.StartUTC = domain.FormatTimestamp(start)
	sess.EndUTC = end
	sess.UpdatedUTC = domain.FormatTimestamp(l.clock.Now())

	if err := l.sessions.Update(ctx, sess); err != nil {
		if errors.Is(err, domain.ErrActiveSessionExists) {
			return nil, apperrors.ConflictError("another session is already running")
		}
		return nil, apperrors.InternalError("failed to update session", err)
	}

	if end == nil {
		metrics.ActiveSessionGauge.Set(1)
	} else if wasRunning {
		metrics.ActiveSessionGauge.Set(0)
	}
	return sess, nil
}

// Delete removes a closed session permanently. The running session cannot be
// deleted without being stopped first.
func (l *Ledger) Delete(ctx context.Context, id int64) (err error) {
	defer func() { metrics.RecordLedgerOp("delete", err) }()

	sess, err := l.sessions.GetByID(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return apperrors.NotFoundError("session not found").WithContext("session_id", id)
	}
	if err != nil {
		return apperrors.InternalError("failed to load session", err)
	}

	if sess.Running() {
		return apperrors.ConflictError("cannot delete the active session, stop it first")
	}

	if err := l.sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return apperrors.NotFoundError("session not found").WithContext("session_id", id)
		}
		return apperrors.InternalError("failed to delete session", err)
	}
	return nil
}

// Active returns the running session, or nil when nothing is being timed.
func (l *Ledger) Active(ctx context.Context) (*domain.Session, error) {
	sess, err := l.sessions.GetActive(ctx)
	if errors.Is(err, domain.ErrNoActiveSession) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load the running session", err)
	}
	return sess, nil
}

// List returns all sessions, most recent first, joined with category names.
// The running session renders with an empty duration; closed sessions carry
// their elapsed time.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	sessions, err := l.sessions.ListAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list sessions", err)
	}

	names := make(map[int64]string)
	entries := make([]Entry, 0, len(sessions))
	for _, sess := range sessions {
		name := NoCategoryLabel
		if sess.CategoryID != nil {
			cached, ok := names[*sess.CategoryID]
			if !ok {
				// Deactivated categories still resolve here for history.
				if cat, err := l.categories.ResolveAny(ctx, *sess.CategoryID); err == nil {
					cached = cat.Name
				} else {
					cached = NoCategoryLabel
				}
				names[*sess.CategoryID] = cached
			}
			name = cached
		}

		duration := ""
		if !sess.Running() {
			duration = l.ComputeDuration(sess.StartUTC, sess.EndUTC)
		}

		entries = append(entries, Entry{
			Session:      sess,
			CategoryName: name,
			Duration:     duration,
		})
	}
	return entries, nil
}
