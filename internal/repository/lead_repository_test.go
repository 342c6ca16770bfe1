package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpath-academy/institute-api/internal/models"
)

func newLeadMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestLeadRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newLeadMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	mock.ExpectExec("INSERT INTO leads").
		WillReturnResult(sqlmock.NewResult(1, 1))

	lead := &models.Lead{Name: "Asha", Email: "asha@example.com", Phone: "+911234567890", Source: "contact_form"}
	err := repo.Create(context.Background(), lead)
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryListBySource(t *testing.T) {
	db, mock, cleanup := newLeadMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "course_interest", "source", "experience", "message", "quiz_result", "created_at"}).
		AddRow("l1", "Asha", "asha@example.com", "+911234567890", nil, "quiz", nil, nil, []byte(`{"score":80,"total":5,"answers":[0,1,2,0,1]}`), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE 1=1 AND LOWER\\(source\\) = \\$1 ORDER BY created_at DESC").
		WithArgs("quiz").
		WillReturnRows(rows)

	leads, err := repo.List(context.Background(), models.LeadFilter{Source: "Quiz"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].QuizResult)
	assert.Equal(t, 80, leads[0].QuizResult.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryListNullQuizResult(t *testing.T) {
	db, mock, cleanup := newLeadMock(t)
	defer cleanup()
	repo := NewLeadRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "course_interest", "source", "experience", "message", "quiz_result", "created_at"}).
		AddRow("l2", "Ravi", "ravi@example.com", "+919876543210", nil, "contact_form", nil, nil, nil, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE 1=1 ORDER BY created_at DESC").
		WillReturnRows(rows)

	leads, err := repo.List(context.Background(), models.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Nil(t, leads[0].QuizResult)
	assert.NoError(t, mock.ExpectationsWereMet())
}
