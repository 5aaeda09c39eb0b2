package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsavoy93/time-tracker/internal/domain"
)

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, category_id, description, start_utc, end_utc, created_utc, updated_utc`

func scanSession(row interface{ Scan(...any) error }) (*domain.Session, error) {
	var sess domain.Session
	var categoryID sql.NullInt64
	var endUTC sql.NullString
	if err := row.Scan(&sess.ID, &categoryID, &sess.Description, &sess.StartUTC, &endUTC, &sess.CreatedUTC, &sess.UpdatedUTC); err != nil {
		return nil, err
	}
	if categoryID.Valid {
		sess.CategoryID = &categoryID.Int64
	}
	if endUTC.Valid {
		sess.EndUTC = &endUTC.String
	}
	return &sess, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (category_id, description, start_utc, end_utc, created_utc, updated_utc)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullableID(s.CategoryID), s.Description, s.StartUTC, nullableString(s.EndUTC), s.CreatedUTC, s.UpdatedUTC)
	if isUniqueViolation(err) {
		return nil, domain.ErrActiveSessionExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("session insert id: %w", err)
	}

	created := *s
	created.ID = id
	return &created, nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (r *SessionRepo) GetActive(ctx context.Context) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE end_utc IS NULL
	`)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return sess, nil
}

func (r *SessionRepo) ListAll(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions ORDER BY start_utc DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) Update(ctx context.Context, s *domain.Session) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET category_id = ?, description = ?, start_utc = ?, end_utc = ?, updated_utc = ?
		WHERE id = ?
	`, nullableID(s.CategoryID), s.Description, s.StartUTC, nullableString(s.EndUTC), s.UpdatedUTC, s.ID)
	if isUniqueViolation(err) {
		return domain.ErrActiveSessionExists
	}
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return requireRowAffected(res, domain.ErrSessionNotFound)
}

func (r *SessionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return requireRowAffected(res, domain.ErrSessionNotFound)
}
