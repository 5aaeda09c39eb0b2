package domain

import "context"

// Category is a named, soft-deletable, ordered tag for work sessions.
// Deactivated categories stay in the table so historical sessions keep
// resolving their names.
type Category struct {
	ID         int64
	Name       string
	IsActive   bool
	SortOrder  int
	CreatedUTC string
}

type CategoryRepository interface {
	Create(ctx context.Context, name string, sortOrder int, createdUTC string) (*Category, error)
	// GetByID looks a category up regardless of its active flag.
	GetByID(ctx context.Context, id int64) (*Category, error)
	// GetActiveByID returns ErrCategoryNotFound for missing AND inactive rows.
	GetActiveByID(ctx context.Context, id int64) (*Category, error)
	// GetByName matches the exact name across active and inactive rows.
	GetByName(ctx context.Context, name string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Deactivate(ctx context.Context, id int64) error
	// MaxSortOrder returns 0 when the table is empty.
	MaxSortOrder(ctx context.Context) (int, error)
}
