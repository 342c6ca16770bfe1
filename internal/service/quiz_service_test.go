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

type mockQuizRepo struct {
	quiz      *models.Quiz
	findErr   error
	created   *models.Quiz
	updated   *models.Quiz
	deleted   string
	deleteErr error
}

func (m *mockQuizRepo) List(ctx context.Context) ([]models.Quiz, error) {
	if m.quiz == nil {
		return nil, nil
	}
	return []models.Quiz{*m.quiz}, nil
}

func (m *mockQuizRepo) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.quiz, nil
}

func (m *mockQuizRepo) FindByCourseSlug(ctx context.Context, slug string) (*models.Quiz, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.quiz, nil
}

func (m *mockQuizRepo) Create(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = "q-created"
	m.created = quiz
	return nil
}

func (m *mockQuizRepo) Update(ctx context.Context, quiz *models.Quiz) error {
	m.updated = quiz
	return nil
}

func (m *mockQuizRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = id
	return nil
}

type mockLeadCapturer struct {
	captured *models.Lead
	err      error
}

func (m *mockLeadCapturer) CaptureInternal(ctx context.Context, lead *models.Lead) error {
	if m.err != nil {
		return m.err
	}
	lead.ID = "lead-1"
	m.captured = lead
	return nil
}

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		ID:           "q1",
		Title:        "Data Engineering Placement",
		PassingScore: 70,
		Questions: models.QuizQuestions{
			{Question: "Q1", Options: []string{"a", "b", "c"}, Correct: 0},
			{Question: "Q2", Options: []string{"a", "b", "c"}, Correct: 1},
			{Question: "Q3", Options: []string{"a", "b", "c"}, Correct: 2},
		},
	}
}

func submission(answers []int) dto.QuizSubmission {
	return dto.QuizSubmission{
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "+911234567890",
		Answers: answers,
	}
}

func TestQuizServiceSubmitGrades(t *testing.T) {
	repo := &mockQuizRepo{quiz: sampleQuiz()}
	leads := &mockLeadCapturer{}
	svc := NewQuizService(repo, leads, validator.New(), zap.NewNop())

	result, err := svc.Submit(context.Background(), "q1", submission([]int{0, 1, 0}))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 3, result.Total)
	// 2/3 rounds to 67, below the 70 passing score.
	assert.Equal(t, 67, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, "lead-1", result.LeadID)

	require.NotNil(t, leads.captured)
	assert.Equal(t, "quiz", leads.captured.Source)
	require.NotNil(t, leads.captured.QuizResult)
	assert.Equal(t, 67, leads.captured.QuizResult.Score)
	assert.Equal(t, []int{0, 1, 0}, leads.captured.QuizResult.Answers)
}

func TestQuizServiceSubmitPerfectScorePasses(t *testing.T) {
	repo := &mockQuizRepo{quiz: sampleQuiz()}
	leads := &mockLeadCapturer{}
	svc := NewQuizService(repo, leads, validator.New(), zap.NewNop())

	result, err := svc.Submit(context.Background(), "q1", submission([]int{0, 1, 2}))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}

func TestQuizServiceSubmitAnonymousSkipsLead(t *testing.T) {
	repo := &mockQuizRepo{quiz: sampleQuiz()}
	leads := &mockLeadCapturer{}
	svc := NewQuizService(repo, leads, validator.New(), zap.NewNop())

	result, err := svc.Submit(context.Background(), "q1", dto.QuizSubmission{Answers: []int{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Empty(t, result.LeadID)
	assert.Nil(t, leads.captured)
}

func TestQuizServiceSubmitAnswerCountMismatch(t *testing.T) {
	repo := &mockQuizRepo{quiz: sampleQuiz()}
	svc := NewQuizService(repo, &mockLeadCapturer{}, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "q1", submission([]int{0, 1}))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestQuizServiceSubmitQuizNotFound(t *testing.T) {
	repo := &mockQuizRepo{findErr: sql.ErrNoRows}
	svc := NewQuizService(repo, &mockLeadCapturer{}, validator.New(), zap.NewNop())

	_, err := svc.Submit(context.Background(), "missing", submission([]int{0}))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestQuizServicePublicViewStripsAnswerKeys(t *testing.T) {
	repo := &mockQuizRepo{quiz: sampleQuiz()}
	svc := NewQuizService(repo, &mockLeadCapturer{}, validator.New(), zap.NewNop())

	quiz, err := svc.GetPublicByID(context.Background(), "q1")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 3)
	for _, q := range quiz.Questions {
		assert.NotEmpty(t, q.Question)
		assert.Len(t, q.Options, 3)
	}
}

func TestQuizServiceCreateRejectsBadAnswerIndex(t *testing.T) {
	repo := &mockQuizRepo{}
	svc := NewQuizService(repo, &mockLeadCapturer{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.QuizRequest{
		Title:        "Broken quiz",
		PassingScore: 50,
		Questions: models.QuizQuestions{
			{Question: "Q1", Options: []string{"a", "b"}, Correct: 5},
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestQuizServiceCreateRejectsTooFewOptions(t *testing.T) {
	repo := &mockQuizRepo{}
	svc := NewQuizService(repo, &mockLeadCapturer{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.QuizRequest{
		Title:        "Broken quiz",
		PassingScore: 50,
		Questions: models.QuizQuestions{
			{Question: "Q1", Options: []string{"a"}, Correct: 0},
		},
	})
	require.Error(t, err)
}
