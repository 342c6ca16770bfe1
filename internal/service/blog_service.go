package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

const blogCachePrefix = "blog:"

// Average adult reading speed used to derive reading time from word count.
const wordsPerMinute = 200

type blogStore interface {
	List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) error
}

// BlogService manages blog articles for both the public site and the dashboard.
type BlogService struct {
	repo      blogStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBlogService constructs a BlogService.
func NewBlogService(repo blogStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BlogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListPublic returns published posts, optionally filtered by category.
func (s *BlogService) ListPublic(ctx context.Context, category string) ([]models.BlogPost, error) {
	key := fmt.Sprintf("%slist:%s", blogCachePrefix, strings.ToLower(category))
	var cached []models.BlogPost
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	published := true
	posts, err := s.repo.List(ctx, models.BlogFilter{Published: &published, Category: category})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blog posts")
	}
	_ = s.cache.Set(ctx, key, posts, 0)
	return posts, nil
}

// GetPublicBySlug returns one published post by slug.
func (s *BlogService) GetPublicBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	key := fmt.Sprintf("%sslug:%s", blogCachePrefix, slug)
	var cached models.BlogPost
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blog post")
	}
	if !post.IsPublished {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
	}
	_ = s.cache.Set(ctx, key, post, 0)
	return post, nil
}

// ListAll returns every post for the admin dashboard.
func (s *BlogService) ListAll(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list blog posts")
	}
	return posts, nil
}

// GetByID returns a post by identifier.
func (s *BlogService) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blog post")
	}
	return post, nil
}

// Create validates and stores a new post. The author is taken from the
// authenticated dashboard user.
func (s *BlogService) Create(ctx context.Context, authorID string, req dto.BlogPostRequest) (*models.BlogPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blog payload")
	}

	exists, err := s.repo.ExistsBySlug(ctx, req.Slug, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slug already in use")
	}

	post := &models.BlogPost{AuthorID: &authorID}
	applyBlogRequest(post, req)
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create blog post")
	}
	s.invalidate(ctx)
	return post, nil
}

// Update validates and stores changes to an existing post.
func (s *BlogService) Update(ctx context.Context, id string, req dto.BlogPostRequest) (*models.BlogPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blog payload")
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load blog post")
	}

	exists, err := s.repo.ExistsBySlug(ctx, req.Slug, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slug already in use")
	}

	applyBlogRequest(post, req)
	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update blog post")
	}
	s.invalidate(ctx)
	return post, nil
}

// Delete removes a post permanently.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete blog post")
	}
	s.invalidate(ctx)
	return nil
}

func (s *BlogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, blogCachePrefix+"*"); err != nil {
		s.logger.Warn("blog cache invalidation failed", zap.Error(err))
	}
}

func applyBlogRequest(post *models.BlogPost, req dto.BlogPostRequest) {
	post.Title = req.Title
	post.Slug = req.Slug
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.Category = req.Category
	post.FeaturedImage = req.FeaturedImage
	post.IsPublished = req.IsPublished
	if req.ReadingTime != nil {
		post.ReadingTime = *req.ReadingTime
	} else {
		post.ReadingTime = estimateReadingTime(req.Content)
	}
}

func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
