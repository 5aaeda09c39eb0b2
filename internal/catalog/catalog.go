// Package catalog maintains the category list: naming and uniqueness rules,
// explicit sort ordering, and soft deletion. Deactivated categories are kept
// so historical sessions still resolve their names.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/jsavoy93/time-tracker/internal/domain"
	apperrors "github.com/jsavoy93/time-tracker/internal/errors"
	"github.com/jsavoy93/time-tracker/internal/metrics"
)

// sortOrderStep is the gap between successive sort_order values, leaving room
// to reorder categories between existing ones.
const sortOrderStep = 10

type Store struct {
	categories domain.CategoryRepository
	clock      clockwork.Clock
}

func NewStore(categories domain.CategoryRepository, clock clockwork.Clock) *Store {
	return &Store{
		categories: categories,
		clock:      clock,
	}
}

// Add creates a new active category. The name is trimmed and must be unique
// across active and deactivated categories alike.
func (s *Store) Add(ctx context.Context, name string) (cat *domain.Category, err error) {
	defer func() { metrics.RecordCategoryOp("add", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("category name cannot be empty")
	}

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.ConflictError("category already exists").WithContext("name", name)
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, apperrors.InternalError("failed to check category name", err)
	}

	maxSort, err := s.categories.MaxSortOrder(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to determine sort order", err)
	}

	created := domain.FormatTimestamp(s.clock.Now())
	cat, err = s.categories.Create(ctx, name, maxSort+sortOrderStep, created)
	if err != nil {
		return nil, apperrors.InternalError("failed to create category", err)
	}
	return cat, nil
}

// Rename changes a category's name. Only the name is mutable after creation;
// sort order and the active flag are managed by other operations.
func (s *Store) Rename(ctx context.Context, id int64, name string) (cat *domain.Category, err error) {
	defer func() { metrics.RecordCategoryOp("rename", err) }()

	existing, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, apperrors.NotFoundError("category not found").WithContext("category_id", id)
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to load category", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("category name cannot be empty")
	}

	if other, err := s.categories.GetByName(ctx, name); err == nil {
		if other.ID != id {
			return nil, apperrors.ConflictError("category name already exists").WithContext("name", name)
		}
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, apperrors.InternalError("failed to check category name", err)
	}

	if err := s.categories.UpdateName(ctx, id, name); err != nil {
		return nil, apperrors.InternalError("failed to rename category", err)
	}

	existing.Name = name
	return existing, nil
}

// Deactivate soft-deletes a category. The row is never removed so sessions
// that reference it keep resolving its name.
func (s *Store) Deactivate(ctx context.Context, id int64) (err error) {
	defer func() { metrics.RecordCategoryOp("deactivate", err) }()

	if _, err := s.categories.GetByID(ctx, id); errors.Is(err, domain.ErrCategoryNotFound) {
		return apperrors.NotFoundError("category not found").WithContext("category_id", id)
	} else if err != nil {
		return apperrors.InternalError("failed to load category", err)
	}

	if err := s.categories.Deactivate(ctx, id); err != nil {
		return apperrors.InternalError("failed to deactivate category", err)
	}
	return nil
}

// ListActive returns active categories ordered by sort_order ascending.
func (s *Store) ListActive(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list categories", err)
	}
	return cats, nil
}

// ListAll returns every category, active or not, ordered by sort_order.
func (s *Store) ListAll(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list categories", err)
	}
	return cats, nil
}

// ResolveActive returns the category only if it exists and is active. The
// ledger uses it to validate category references on start and edit.
func (s *Store) ResolveActive(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := s.categories.GetActiveByID(ctx, id)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, apperrors.NotFoundError("category not found or inactive").WithContext("category_id", id)
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to resolve category", err)
	}
	return cat, nil
}

// ResolveAny returns the category regardless of its active flag, for
// historical display of sessions that reference a deactivated category.
func (s *Store) ResolveAny(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, apperrors.NotFoundError("category not found").WithContext("category_id", id)
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to resolve category", err)
	}
	return cat, nil
}
