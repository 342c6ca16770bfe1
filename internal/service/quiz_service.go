package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brightpath-academy/institute-api/internal/dto"
	"github.com/brightpath-academy/institute-api/internal/models"
	appErrors "github.com/brightpath-academy/institute-api/pkg/errors"
)

type quizStore interface {
	List(ctx context.Context) ([]models.Quiz, error)
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByCourseSlug(ctx context.Context, slug string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
}

type leadCapturer interface {
	CaptureInternal(ctx context.Context, lead *models.Lead) error
}

// QuizService manages placement quizzes and grades public submissions.
// Answer keys never leave the server: grading happens here and public
// reads strip the correct indexes.
type QuizService struct {
	repo      quizStore
	leads     leadCapturer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQuizService constructs a QuizService.
func NewQuizService(repo quizStore, leads leadCapturer, validate *validator.Validate, logger *zap.Logger) *QuizService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{repo: repo, leads: leads, validator: validate, logger: logger}
}

// GetPublicByCourse returns the answer-key-free quiz for an active course.
func (s *QuizService) GetPublicByCourse(ctx context.Context, slug string) (*models.PublicQuiz, error) {
	quiz, err := s.repo.FindByCourseSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}
	return publicQuiz(quiz), nil
}

// GetPublicByID returns the answer-key-free quiz by identifier.
func (s *QuizService) GetPublicByID(ctx context.Context, id string) (*models.PublicQuiz, error) {
	quiz, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}
	return publicQuiz(quiz), nil
}

// Submit grades a public quiz attempt and captures the visitor as a lead.
func (s *QuizService) Submit(ctx context.Context, quizID string, req dto.QuizSubmission) (*dto.QuizResultResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	quiz, err := s.repo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}

	total := len(quiz.Questions)
	if len(req.Answers) != total {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("expected %d answers, got %d", total, len(req.Answers)))
	}

	correct := 0
	for i, question := range quiz.Questions {
		if req.Answers[i] == question.Correct {
			correct++
		}
	}
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	passed := score >= quiz.PassingScore

	// Anonymous attempts are graded but leave no lead behind.
	leadID := ""
	if req.HasContact() {
		lead := &models.Lead{
			Name:           req.Name,
			Email:          req.Email,
			Phone:          req.Phone,
			CourseInterest: req.CourseInterest,
			Source:         "quiz",
			QuizResult: &models.QuizResultSummary{
				Score:   score,
				Total:   total,
				Answers: req.Answers,
			},
		}
		if err := s.leads.CaptureInternal(ctx, lead); err != nil {
			return nil, err
		}
		leadID = lead.ID
	}

	return &dto.QuizResultResponse{
		QuizID:       quiz.ID,
		Score:        score,
		Total:        total,
		Correct:      correct,
		PassingScore: quiz.PassingScore,
		Passed:       passed,
		LeadID:       leadID,
	}, nil
}

// List returns all quizzes, answer keys included, for the dashboard.
func (s *QuizService) List(ctx context.Context) ([]models.Quiz, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list quizzes")
	}
	return quizzes, nil
}

// GetByID returns a quiz with its answer key for the dashboard.
func (s *QuizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	quiz, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}
	return quiz, nil
}

// Create validates and stores a new quiz.
func (s *QuizService) Create(ctx context.Context, req dto.QuizRequest) (*models.Quiz, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	quiz := &models.Quiz{
		CourseID:     req.CourseID,
		Title:        req.Title,
		PassingScore: req.PassingScore,
		Questions:    req.Questions,
	}
	if err := s.repo.Create(ctx, quiz); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create quiz")
	}
	return quiz, nil
}

// Update validates and stores changes to an existing quiz.
func (s *QuizService) Update(ctx context.Context, id string, req dto.QuizRequest) (*models.Quiz, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	quiz, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load quiz")
	}
	quiz.CourseID = req.CourseID
	quiz.Title = req.Title
	quiz.PassingScore = req.PassingScore
	quiz.Questions = req.Questions
	if err := s.repo.Update(ctx, quiz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update quiz")
	}
	return quiz, nil
}

// Delete removes a quiz permanently.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete quiz")
	}
	return nil
}

func (s *QuizService) validateRequest(req dto.QuizRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quiz payload")
	}
	for i, q := range req.Questions {
		if q.Question == "" {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("question %d has empty text", i+1))
		}
		if len(q.Options) < 2 {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("question %d needs at least two options", i+1))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("question %d has an out-of-range answer index", i+1))
		}
	}
	return nil
}

func publicQuiz(quiz *models.Quiz) *models.PublicQuiz {
	return &models.PublicQuiz{
		ID:           quiz.ID,
		CourseID:     quiz.CourseID,
		Title:        quiz.Title,
		PassingScore: quiz.PassingScore,
		Questions:    quiz.PublicQuestions(),
	}
}
