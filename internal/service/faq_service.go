package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

const faqCachePrefix = "faqs:"

type faqStore interface {
	List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, error)
	FindByID(ctx context.Context, id string) (*models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ) error
	Update(ctx context.Context, faq *models.FAQ) error
	Delete(ctx context.Context, id string) error
}

// FAQService manages FAQ entries.
type FAQService struct {
	repo      faqStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFAQService constructs a FAQService.
func NewFAQService(repo faqStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *FAQService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FAQService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListPublic returns active FAQ entries in display order.
func (s *FAQService) ListPublic(ctx context.Context) ([]models.FAQ, error) {
	key := faqCachePrefix + "active"
	var cached []models.FAQ
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	active := true
	faqs, err := s.repo.List(ctx, models.FAQFilter{Active: &active})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faqs")
	}
	_ = s.cache.Set(ctx, key, faqs, 0)
	return faqs, nil
}

// ListAll returns every FAQ entry for the admin dashboard.
func (s *FAQService) ListAll(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, error) {
	faqs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faqs")
	}
	return faqs, nil
}

// GetByID returns a FAQ entry by identifier.
func (s *FAQService) GetByID(ctx context.Context, id string) (*models.FAQ, error) {
	faq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faq not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faq")
	}
	return faq, nil
}

// Create validates and stores a new FAQ entry.
func (s *FAQService) Create(ctx context.Context, req dto.FAQRequest) (*models.FAQ, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faq payload")
	}

	faq := &models.FAQ{
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}
	if err := s.repo.Create(ctx, faq); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faq")
	}
	s.invalidate(ctx)
	return faq, nil
}

// Update validates and stores changes to an existing FAQ entry.
func (s *FAQService) Update(ctx context.Context, id string, req dto.FAQRequest) (*models.FAQ, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faq payload")
	}

	faq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faq not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faq")
	}

	faq.Question = req.Question
	faq.Answer = req.Answer
	faq.Category = req.Category
	faq.SortOrder = req.SortOrder
	faq.IsActive = req.IsActive
	if err := s.repo.Update(ctx, faq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faq not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faq")
	}
	s.invalidate(ctx)
	return faq, nil
}

// Delete removes a FAQ entry permanently.
func (s *FAQService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "faq not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faq")
	}
	s.invalidate(ctx)
	return nil
}

func (s *FAQService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, faqCachePrefix+"*"); err != nil {
		s.logger.Warn("faq cache invalidation failed", zap.Error(err))
	}
}
