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

const testimonialColumns = `id, name, course_id, course_name, rating, review, job_title, company, image, is_approved, created_at`

// TestimonialRepository manages persistence for student testimonials.
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository constructs a TestimonialRepository.
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// List returns testimonials matching the provided filters, newest first.
func (r *TestimonialRepository) List(ctx context.Context, filter models.TestimonialFilter) ([]models.Testimonial, error) {
	base := "FROM testimonials WHERE 1=1"
	var args []interface{}
	if filter.Approved != nil {
		base += fmt.Sprintf(" AND is_approved = $%d", len(args)+1)
		args = append(args, *filter.Approved)
	}
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", testimonialColumns, base)
	var testimonials []models.Testimonial
	if err := r.db.SelectContext(ctx, &testimonials, query, args...); err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	return testimonials, nil
}

// FindByID fetches a testimonial by identifier.
func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := fmt.Sprintf("SELECT %s FROM testimonials WHERE id = $1 LIMIT 1", testimonialColumns)
	var testimonial models.Testimonial
	if err := r.db.GetContext(ctx, &testimonial, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find testimonial by id: %w", err)
	}
	return &testimonial, nil
}

// Create inserts a new testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	if testimonial.ID == "" {
		testimonial.ID = uuid.NewString()
	}
	if testimonial.CreatedAt.IsZero() {
		testimonial.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO testimonials (id, name, course_id, course_name, rating, review, job_title, company, image, is_approved, created_at)
        VALUES (:id, :name, :course_id, :course_name, :rating, :review, :job_title, :company, :image, :is_approved, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, testimonial); err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

// Update modifies an existing testimonial.
func (r *TestimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	const query = `UPDATE testimonials SET name = :name, course_id = :course_id, course_name = :course_name, rating = :rating, review = :review, job_title = :job_title, company = :company, image = :image, is_approved = :is_approved WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, testimonial)
	if err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a testimonial permanently.
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM testimonials WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
