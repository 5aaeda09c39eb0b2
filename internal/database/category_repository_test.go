package database

import (
	"context"
	"testing"

	"github.com/jsavoy93/time-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepo_CreateAndGet(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "Coding", 10, "2026-01-27T15:53:55Z")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coding", got.Name)
	assert.Equal(t, 10, got.SortOrder)
	assert.Equal(t, "2026-01-27T15:53:55Z", got.CreatedUTC)
}

func TestCategoryRepo_GetByID_NotFound(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepo_GetByName(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Meetings", 20, "2026-01-27T15:53:55Z")
	require.NoError(t, err)

	got, err := repo.GetByName(ctx, "Meetings")
	require.NoError(t, err)
	assert.Equal(t, "Meetings", got.Name)

	_, err = repo.GetByName(ctx, "Nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepo_GetActiveByID_SkipsDeactivated(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	cat, err := repo.Create(ctx, "Coding", 10, "2026-01-27T15:53:55Z")
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, cat.ID))

	_, err = repo.GetActiveByID(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	// Plain GetByID still sees the soft-deleted row.
	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestCategoryRepo_Lists(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	coding, err := repo.Create(ctx, "Coding", 20, "2026-01-27T15:53:55Z")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Meetings", 10, "2026-01-27T15:53:55Z")
	require.NoError(t, err)
	require.NoError(t, repo.Deactivate(ctx, coding.ID))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Meetings", active[0].Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Meetings", all[0].Name)
	assert.Equal(t, "Coding", all[1].Name)
}

func TestCategoryRepo_UpdateName(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	cat, err := repo.Create(ctx, "Coding", 10, "2026-01-27T15:53:55Z")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateName(ctx, cat.ID, "Engineering"))

	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Name)

	err = repo.UpdateName(ctx, 42, "Anything")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryRepo_MaxSortOrder(t *testing.T) {
	repo := NewCategoryRepo(newTestDB(t))
	ctx := context.Background()

	maxSort, err := repo.MaxSortOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, maxSort)

	_, err = repo.Create(ctx, "Coding", 10, "2026-01-27T15:53:55Z")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Meetings", 30, "2026-01-27T15:53:55Z")
	require.NoError(t, err)

	maxSort, err = repo.MaxSortOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, maxSort)
}

func TestSeedCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)
	ctx := context.Background()

	require.NoError(t, db.SeedCategories(ctx, testClock()))

	cats, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 5)
	assert.Equal(t, "Coding", cats[0].Name)
	assert.Equal(t, 10, cats[0].SortOrder)
	assert.Equal(t, "Admin", cats[4].Name)
	assert.Equal(t, 50, cats[4].SortOrder)

	// Seeding again is a no-op, even after a deactivation.
	require.NoError(t, repo.Deactivate(ctx, cats[0].ID))
	require.NoError(t, db.SeedCategories(ctx, testClock()))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
