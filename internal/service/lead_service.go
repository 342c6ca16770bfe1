package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

type leadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
}

// LeadService captures and lists prospective-student leads.
type LeadService struct {
	repo      leadStore
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLeadService constructs a LeadService.
func NewLeadService(repo leadStore, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LeadService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Capture validates and stores a public form submission.
func (s *LeadService) Capture(ctx context.Context, req dto.LeadRequest) (*models.Lead, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lead payload")
	}

	lead := &models.Lead{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseInterest: req.CourseInterest,
		Source:         req.Source,
		Experience:     req.Experience,
		Message:        req.Message,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store lead")
	}

	s.metrics.RecordLeadCaptured(lead.Source)
	s.logger.Info("lead captured",
		zap.String("lead_id", lead.ID),
		zap.String("source", lead.Source),
	)
	return lead, nil
}

// CaptureInternal stores a lead assembled by another service (quiz
// submissions, syllabus downloads). The caller is responsible for
// validating contact fields.
func (s *LeadService) CaptureInternal(ctx context.Context, lead *models.Lead) error {
	if err := s.repo.Create(ctx, lead); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store lead")
	}
	s.metrics.RecordLeadCaptured(lead.Source)
	s.logger.Info("lead captured",
		zap.String("lead_id", lead.ID),
		zap.String("source", lead.Source),
	)
	return nil
}

// List returns captured leads for the admin dashboard.
func (s *LeadService) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list leads")
	}
	return leads, nil
}
