package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

type mockCourseRepo struct {
	courses    []models.Course
	bySlug     *models.Course
	byID       *models.Course
	slugExists bool
	findErr    error
	deleteErr  error
	created    *models.Course
	updated    *models.Course
}

func (m *mockCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return m.courses, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.byID, nil
}

func (m *mockCourseRepo) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.bySlug, nil
}

func (m *mockCourseRepo) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return m.slugExists, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = "c-created"
	m.created = course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	m.updated = course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func noCache() *CacheService {
	return NewCacheService(nil, nil, 0, zap.NewNop(), false)
}

func courseRequest() dto.CourseRequest {
	return dto.CourseRequest{
		Title:       "Data Engineering",
		Slug:        "data-engineering",
		Description: "Build pipelines",
		Duration:    "12 weeks",
		Mode:        models.ModeOnline,
		Level:       models.LevelBeginner,
		Category:    "engineering",
		IsActive:    true,
	}
}

func TestCourseServiceCreate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	course, err := svc.Create(context.Background(), courseRequest())
	require.NoError(t, err)
	assert.Equal(t, "c-created", course.ID)
	assert.Equal(t, "data-engineering", course.Slug)
}

func TestCourseServiceCreateSlugConflict(t *testing.T) {
	repo := &mockCourseRepo{slugExists: true}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), courseRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestCourseServiceCreateInvalidMode(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	req := courseRequest()
	req.Mode = "weekend"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCourseServiceGetPublicBySlugHidesInactive(t *testing.T) {
	repo := &mockCourseRepo{bySlug: &models.Course{ID: "c1", Slug: "data-engineering", IsActive: false}}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	_, err := svc.GetPublicBySlug(context.Background(), "data-engineering")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCourseServiceDeleteNotFound(t *testing.T) {
	repo := &mockCourseRepo{deleteErr: sql.ErrNoRows}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCourseServiceUpdateSlugConflict(t *testing.T) {
	repo := &mockCourseRepo{byID: &models.Course{ID: "c1", Slug: "old"}, slugExists: true}
	svc := NewCourseService(repo, noCache(), validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), "c1", courseRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Nil(t, repo.updated)
}
