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

func newCourseMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug", "description", "duration", "mode", "level", "price", "features", "syllabus_path", "batch_dates", "icon", "category", "is_active", "overview", "main_image", "logo", "curriculum", "batches", "fees", "career_opportunities", "tools_and_technologies", "what_you_will_learn", "created_at", "updated_at"}).
		AddRow("c1", "Data Engineering", "data-engineering", "desc", "12 weeks", "online", "beginner", 499.0, []byte(`["Placement support"]`), nil, []byte(`[]`), "database", "engineering", true, nil, nil, nil, []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`["Data Engineer"]`), nil, nil, time.Now(), time.Now())
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	active := true
	mock.ExpectQuery("SELECT (.+) FROM courses WHERE 1=1 AND is_active = \\$1 ORDER BY created_at DESC").
		WithArgs(true).
		WillReturnRows(courseRows())

	courses, err := repo.List(context.Background(), models.CourseFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "data-engineering", courses[0].Slug)
	assert.Equal(t, models.StringList{"Placement support"}, courses[0].Features)
	assert.Equal(t, models.StringList{"Data Engineer"}, courses[0].CareerOpportunities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindBySlug(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM courses WHERE slug = \\$1 LIMIT 1").
		WithArgs("data-engineering").
		WillReturnRows(courseRows())

	course, err := repo.FindBySlug(context.Background(), "data-engineering")
	require.NoError(t, err)
	assert.Equal(t, "c1", course.ID)
	assert.False(t, course.HasSyllabus())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindBySlugNotFound(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM courses WHERE slug = \\$1 LIMIT 1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryExistsBySlug(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("SELECT 1 FROM courses WHERE slug = \\$1 LIMIT 1").
		WithArgs("data-engineering").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err := repo.ExistsBySlug(context.Background(), "data-engineering", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery("SELECT 1 FROM courses WHERE slug = \\$1 AND id <> \\$2 LIMIT 1").
		WithArgs("data-engineering", "c1").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsBySlug(context.Background(), "data-engineering", "c1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Title: "Data Engineering", Slug: "data-engineering", Description: "desc", Category: "engineering", Mode: models.ModeOnline, Level: models.LevelBeginner, Duration: "12 weeks", IsActive: true}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("DELETE FROM courses WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
