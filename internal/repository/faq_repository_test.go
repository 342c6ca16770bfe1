package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-academy/institute-api/internal/models"
)

func newFAQMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFAQRepositoryListOrdersBySortOrder(t *testing.T) {
	db, mock, cleanup := newFAQMock(t)
	defer cleanup()
	repo := NewFAQRepository(db)

	active := true
	rows := sqlmock.NewRows([]string{"id", "question", "answer", "category", "sort_order", "is_active", "created_at", "updated_at"}).
		AddRow("f1", "Q1", "A1", "general", 1, true, time.Now(), time.Now()).
		AddRow("f2", "Q2", "A2", "fees", 2, true, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE 1=1 AND is_active = \\$1 ORDER BY sort_order ASC, created_at ASC").
		WithArgs(true).
		WillReturnRows(rows)

	faqs, err := repo.List(context.Background(), models.FAQFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, faqs, 2)
	assert.Equal(t, "f1", faqs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFAQRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newFAQMock(t)
	defer cleanup()
	repo := NewFAQRepository(db)

	mock.ExpectExec("UPDATE faqs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.FAQ{ID: "missing", Question: "Q", Answer: "A"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFAQRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newFAQMock(t)
	defer cleanup()
	repo := NewFAQRepository(db)

	mock.ExpectExec("INSERT INTO faqs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	faq := &models.FAQ{Question: "Do you offer placement support?", Answer: "Yes.", Category: "general", SortOrder: 3, IsActive: true}
	err := repo.Create(context.Background(), faq)
	require.NoError(t, err)
	assert.NotEmpty(t, faq.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
