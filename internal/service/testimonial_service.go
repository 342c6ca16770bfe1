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

const testimonialCachePrefix = "testimonials:"

type testimonialStore interface {
	List(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, error)
	FindByID(ctx context.Context, id string) (*models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id string) error
}

// TestimonialService manages student testimonials. Only approved
// entries are visible on the public site.
type TestimonialService struct {
	repo      testimonialStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTestimonialService constructs a TestimonialService.
func NewTestimonialService(repo testimonialStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TestimonialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListPublic returns approved testimonials.
func (s *TestimonialService) ListPublic(ctx context.Context) ([]models.Testimonial, error) {
	key := testimonialCachePrefix + "approved"
	var cached []models.Testimonial
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	approved := true
	testimonials, err := s.repo.List(ctx, models.TestimonialFilter{Approved: &approved})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list testimonials")
	}
	_ = s.cache.Set(ctx, key, testimonials, 0)
	return testimonials, nil
}

// ListAll returns every testimonial for the admin dashboard.
func (s *TestimonialService) ListAll(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, error) {
	testimonials, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list testimonials")
	}
	return testimonials, nil
}

// GetByID returns a testimonial by identifier.
func (s *TestimonialService) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load testimonial")
	}
	return testimonial, nil
}

// Create validates and stores a new testimonial.
func (s *TestimonialService) Create(ctx context.Context, req dto.TestimonialRequest) (*models.Testimonial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid testimonial payload")
	}

	testimonial := &models.Testimonial{}
	applyTestimonialRequest(testimonial, req)
	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create testimonial")
	}
	s.invalidate(ctx)
	return testimonial, nil
}

// Update validates and stores changes to an existing testimonial.
func (s *TestimonialService) Update(ctx context.Context, id string, req dto.TestimonialRequest) (*models.Testimonial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid testimonial payload")
	}

	testimonial, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load testimonial")
	}

	applyTestimonialRequest(testimonial, req)
	if err := s.repo.Update(ctx, testimonial); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update testimonial")
	}
	s.invalidate(ctx)
	return testimonial, nil
}

// Delete removes a testimonial permanently.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "testimonial not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete testimonial")
	}
	s.invalidate(ctx)
	return nil
}

func (s *TestimonialService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, testimonialCachePrefix+"*"); err != nil {
		s.logger.Warn("testimonial cache invalidation failed", zap.Error(err))
	}
}

func applyTestimonialRequest(testimonial *models.Testimonial, req dto.TestimonialRequest) {
	testimonial.Name = req.Name
	testimonial.CourseID = req.CourseID
	testimonial.CourseName = req.CourseName
	testimonial.Rating = req.Rating
	testimonial.Review = req.Review
	testimonial.JobTitle = req.JobTitle
	testimonial.Company = req.Company
	testimonial.Image = req.Image
	testimonial.IsApproved = req.IsApproved
}
