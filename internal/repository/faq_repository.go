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

const faqColumns = `id, question, answer, category, sort_order, is_active, created_at, updated_at`

// FAQRepository manages persistence for FAQ entries.
type FAQRepository struct {
	db *sqlx.DB
}

// NewFAQRepository constructs a FAQRepository.
func NewFAQRepository(db *sqlx.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns FAQ entries ordered by their manual sort key.
func (r *FAQRepository) List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, error) {
	base := "FROM faqs WHERE 1=1"
	var args []interface{}
	if filter.Active != nil {
		base += fmt.Sprintf(" AND is_active = $%d", len(args)+1)
		args = append(args, *filter.Active)
	}
	query := fmt.Sprintf("SELECT %s %s ORDER BY sort_order ASC, created_at ASC", faqColumns, base)
	var faqs []models.FAQ
	if err := r.db.SelectContext(ctx, &faqs, query, args...); err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return faqs, nil
}

// FindByID fetches a FAQ entry by identifier.
func (r *FAQRepository) FindByID(ctx context.Context, id string) (*models.FAQ, error) {
	query := fmt.Sprintf("SELECT %s FROM faqs WHERE id = $1 LIMIT 1", faqColumns)
	var faq models.FAQ
	if err := r.db.GetContext(ctx, &faq, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faq by id: %w", err)
	}
	return &faq, nil
}

// Create inserts a new FAQ entry.
func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQ) error {
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = now
	}
	faq.UpdatedAt = now
	const query = `INSERT INTO faqs (id, question, answer, category, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :question, :answer, :category, :sort_order, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, faq); err != nil {
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}

// Update modifies an existing FAQ entry.
func (r *FAQRepository) Update(ctx context.Context, faq *models.FAQ) error {
	faq.UpdatedAt = time.Now().UTC()
	const query = `UPDATE faqs SET question = :question, answer = :answer, category = :category, sort_order = :sort_order, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, faq)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a FAQ entry permanently.
func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM faqs WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
