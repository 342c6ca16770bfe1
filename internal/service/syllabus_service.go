package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
	"github.com/brightpath-academy/institute-api/pkg/storage"
)

type syllabusCourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	FindBySlug(ctx context.Context, slug string) (*models.Course, error)
	UpdateSyllabusPath(ctx context.Context, id string, path *string) error
}

type syllabusStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// SyllabusConfig tunes syllabus upload and download behaviour.
type SyllabusConfig struct {
	APIPrefix        string
	MaxFileSizeBytes int64
}

// SyllabusDownload aggregates resolved download data.
type SyllabusDownload struct {
	File     *os.File
	Filename string
}

// SyllabusService handles syllabus PDF uploads and lead-gated downloads.
// Visitors trade their contact details for a short-lived signed link;
// the file itself is never exposed by a stable URL.
type SyllabusService struct {
	courses   syllabusCourseStore
	leads     leadCapturer
	storage   syllabusStorage
	signer    *storage.SignedURLSigner
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SyllabusConfig
}

// NewSyllabusService constructs a SyllabusService.
func NewSyllabusService(courses syllabusCourseStore, leads leadCapturer, store syllabusStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, cfg SyllabusConfig) *SyllabusService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 20 * 1024 * 1024
	}
	return &SyllabusService{courses: courses, leads: leads, storage: store, signer: signer, validator: validate, logger: logger, cfg: cfg}
}

// Upload stores a syllabus PDF for a course, replacing any previous file.
func (s *SyllabusService) Upload(ctx context.Context, courseID, filename string, size int64, r io.Reader) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return appErrors.Clone(appErrors.ErrValidation, "syllabus must be a PDF file")
	}
	if size > s.cfg.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSizeBytes))
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	// The declared size is client-controlled, so the stream itself is
	// measured: one byte past the limit fails the upload rather than
	// persisting a truncated file.
	relPath := fmt.Sprintf("%s/%s_syllabus.pdf", course.ID, time.Now().UTC().Format("20060102_150405"))
	counted := &countingReader{r: io.LimitReader(r, s.cfg.MaxFileSizeBytes+1)}
	stored, err := s.storage.SaveStream(relPath, counted)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store syllabus")
	}
	if counted.n > s.cfg.MaxFileSizeBytes {
		if err := s.storage.Delete(stored); err != nil {
			s.logger.Warn("failed to remove oversized upload", zap.String("path", stored), zap.Error(err))
		}
		return appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSizeBytes))
	}

	if course.HasSyllabus() && *course.SyllabusPath != stored {
		if err := s.storage.Delete(*course.SyllabusPath); err != nil {
			s.logger.Warn("failed to remove previous syllabus", zap.String("course_id", course.ID), zap.Error(err))
		}
	}

	if err := s.courses.UpdateSyllabusPath(ctx, course.ID, &stored); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record syllabus path")
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// RequestDownload captures the visitor as a lead and returns a signed,
// short-lived download link for the course syllabus.
func (s *SyllabusService) RequestDownload(ctx context.Context, slug string, req dto.SyllabusRequest) (*dto.SyllabusDownloadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid syllabus request payload")
	}

	course, err := s.courses.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !course.IsActive || !course.HasSyllabus() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "syllabus not available for this course")
	}

	lead := &models.Lead{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CourseInterest: &course.Title,
		Source:         "syllabus_download",
	}
	if err := s.leads.CaptureInternal(ctx, lead); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(course.ID, *course.SyllabusPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &dto.SyllabusDownloadResponse{
		DownloadURL: fmt.Sprintf("%s/downloads/%s", prefix, token),
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ResolveDownload validates a signed token and opens the syllabus file.
func (s *SyllabusService) ResolveDownload(ctx context.Context, token string) (*SyllabusDownload, error) {
	courseID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if !course.HasSyllabus() || *course.SyllabusPath != relPath {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "token no longer matches the stored syllabus")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open syllabus file")
	}
	return &SyllabusDownload{
		File:     file,
		Filename: fmt.Sprintf("%s-syllabus.pdf", course.Slug),
	}, nil
}
