package postgres

import (
	"context"
	"testing"
	"time"

	"planbook/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_Create(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO categories \(owner_id, name, created_at\)`).
		WithArgs("user-1", "work", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("cat-1"))

	repo := NewCategoryRepository(db)
	c := &domain.Category{OwnerID: "user-1", Name: "work", CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, "cat-1", c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListByOwnerID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, owner_id, name, created_at`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "created_at"}).
			AddRow("cat-1", "user-1", "personal", now).
			AddRow("cat-2", "user-1", "work", now))

	repo := NewCategoryRepository(db)
	categories, err := repo.ListByOwnerID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "personal", categories[0].Name)
	assert.Equal(t, "work", categories[1].Name)
}

func TestCategoryRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
		WithArgs("cat-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM categories`).
		WithArgs("cat-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCategoryRepository(db)
	require.NoError(t, repo.Delete(context.Background(), "cat-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "cat-missing"), domain.ErrNotFound)
}
