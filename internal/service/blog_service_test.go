package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

type mockBlogRepo struct {
	posts      []models.BlogPost
	bySlug     *models.BlogPost
	byID       *models.BlogPost
	slugExists bool
	created    *models.BlogPost
	updated    *models.BlogPost
}

func (m *mockBlogRepo) List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	return m.posts, nil
}

func (m *mockBlogRepo) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return m.byID, nil
}

func (m *mockBlogRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return m.bySlug, nil
}

func (m *mockBlogRepo) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	return m.slugExists, nil
}

func (m *mockBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	post.ID = "b-created"
	m.created = post
	return nil
}

func (m *mockBlogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	m.updated = post
	return nil
}

func (m *mockBlogRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func blogRequest() dto.BlogPostRequest {
	return dto.BlogPostRequest{
		Title:       "Why Learn SQL First",
		Slug:        "why-learn-sql-first",
		Content:     strings.Repeat("word ", 450),
		Excerpt:     "SQL remains the backbone of data work.",
		Category:    "career",
		IsPublished: true,
	}
}

func TestBlogServiceCreateDerivesReadingTime(t *testing.T) {
	repo := &mockBlogRepo{}
	svc := NewBlogService(repo, noCache(), validator.New(), zap.NewNop())

	post, err := svc.Create(context.Background(), "author-1", blogRequest())
	require.NoError(t, err)
	// 450 words at 200 wpm rounds up to 3 minutes.
	assert.Equal(t, 3, post.ReadingTime)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, "author-1", *post.AuthorID)
}

func TestBlogServiceCreateHonoursExplicitReadingTime(t *testing.T) {
	repo := &mockBlogRepo{}
	svc := NewBlogService(repo, noCache(), validator.New(), zap.NewNop())

	req := blogRequest()
	rt := 12
	req.ReadingTime = &rt
	post, err := svc.Create(context.Background(), "author-1", req)
	require.NoError(t, err)
	assert.Equal(t, 12, post.ReadingTime)
}

func TestBlogServiceShortContentReadsAsOneMinute(t *testing.T) {
	repo := &mockBlogRepo{}
	svc := NewBlogService(repo, noCache(), validator.New(), zap.NewNop())

	req := blogRequest()
	req.Content = "Just a short announcement."
	post, err := svc.Create(context.Background(), "author-1", req)
	require.NoError(t, err)
	assert.Equal(t, 1, post.ReadingTime)
}

func TestBlogServiceCreateSlugConflict(t *testing.T) {
	repo := &mockBlogRepo{slugExists: true}
	svc := NewBlogService(repo, noCache(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "author-1", blogRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestBlogServiceGetPublicBySlugHidesDrafts(t *testing.T) {
	repo := &mockBlogRepo{bySlug: &models.BlogPost{ID: "b1", Slug: "draft-post", IsPublished: false}}
	svc := NewBlogService(repo, noCache(), validator.New(), zap.NewNop())

	_, err := svc.GetPublicBySlug(context.Background(), "draft-post")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
