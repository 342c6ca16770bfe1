package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brightpath-academy/institute-api/internal/models"
)

const quizColumns = `id, course_id, title, passing_score, questions, created_at, updated_at`

const quizColumnsQualified = `q.id, q.course_id, q.title, q.passing_score, q.questions, q.created_at, q.updated_at`

// QuizRepository manages persistence for placement quizzes.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository constructs a QuizRepository.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// List returns all quizzes, newest first.
func (r *QuizRepository) List(ctx context.Context) ([]models.Quiz, error) {
	query := fmt.Sprintf("SELECT %s FROM quizzes ORDER BY created_at DESC", quizColumns)
	var quizzes []models.Quiz
	if err := r.db.SelectContext(ctx, &quizzes, query); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// FindByID fetches a quiz by identifier.
func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := fmt.Sprintf("SELECT %s FROM quizzes WHERE id = $1 LIMIT 1", quizColumns)
	var quiz models.Quiz
	if err := r.db.GetContext(ctx, &quiz, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find quiz by id: %w", err)
	}
	return &quiz, nil
}

// FindByCourseSlug fetches the quiz attached to an active course, if any.
func (r *QuizRepository) FindByCourseSlug(ctx context.Context, slug string) (*models.Quiz, error) {
	query := fmt.Sprintf(`SELECT %s FROM quizzes q
        JOIN courses c ON c.id = q.course_id
        WHERE c.slug = $1 AND c.is_active = TRUE
        ORDER BY q.created_at DESC LIMIT 1`, quizColumnsQualified)
	var quiz models.Quiz
	if err := r.db.GetContext(ctx, &quiz, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find quiz by course: %w", err)
	}
	return &quiz, nil
}

// Create inserts a new quiz record.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = now
	}
	quiz.UpdatedAt = now
	const query = `INSERT INTO quizzes (id, course_id, title, passing_score, questions, created_at, updated_at)
        VALUES (:id, :course_id, :title, :passing_score, :questions, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, quiz); err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

// Update modifies an existing quiz.
func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	quiz.UpdatedAt = time.Now().UTC()
	const query = `UPDATE quizzes SET course_id = :course_id, title = :title, passing_score = :passing_score, questions = :questions, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, quiz)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a quiz row permanently.
func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM quizzes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
