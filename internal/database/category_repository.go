package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsavoy93/time-tracker/internal/domain"
)

type CategoryRepo struct {
	db *DB
}

func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categoryColumns = `id, name, is_active, sort_order, created_utc`

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var cat domain.Category
	var active int
	if err := row.Scan(&cat.ID, &cat.Name, &active, &cat.SortOrder, &cat.CreatedUTC); err != nil {
		return nil, err
	}
	cat.IsActive = active != 0
	return &cat, nil
}

func (r *CategoryRepo) Create(ctx context.Context, name string, sortOrder int, createdUTC string) (*domain.Category, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name, is_active, sort_order, created_utc)
		VALUES (?, 1, ?, ?)
	`, name, sortOrder, createdUTC)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("category insert id: %w", err)
	}

	return &domain.Category{
		ID:         id,
		Name:       name,
		IsActive:   true,
		SortOrder:  sortOrder,
		CreatedUTC: createdUTC,
	}, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = ?
	`, id)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

func (r *CategoryRepo) GetActiveByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = ? AND is_active = 1
	`, id)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active category: %w", err)
	}
	return cat, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE name = ?
	`, name)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return cat, nil
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE is_active = 1 ORDER BY sort_order
	`)
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `
		SELECT `+categoryColumns+` FROM categories ORDER BY sort_order
	`)
}

func (r *CategoryRepo) list(ctx context.Context, query string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cats, nil
}

func (r *CategoryRepo) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ? WHERE id = ?
	`, name, id)
	if err != nil {
		return fmt.Errorf("update category name: %w", err)
	}
	return requireRowAffected(res, domain.ErrCategoryNotFound)
}

func (r *CategoryRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET is_active = 0 WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	return requireRowAffected(res, domain.ErrCategoryNotFound)
}

func (r *CategoryRepo) MaxSortOrder(ctx context.Context) (int, error) {
	var maxSort int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(sort_order), 0) FROM categories
	`).Scan(&maxSort)
	if err != nil {
		return 0, fmt.Errorf("max sort order: %w", err)
	}
	return maxSort, nil
}

func requireRowAffected(res sql.Result, missing error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}
