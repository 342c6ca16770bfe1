package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/brightpath-academy/institute-api/internal/models"
)

const leadColumns = `id, name, email, phone, course_interest, source, experience, message, quiz_result, created_at`

// LeadRepository manages persistence for captured leads. Leads are
// append-only: there are no update or delete operations.
type LeadRepository struct {
	db *sqlx.DB
}

// NewLeadRepository constructs a LeadRepository.
func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead record.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO leads (id, name, email, phone, course_interest, source, experience, message, quiz_result, created_at)
        VALUES (:id, :name, :email, :phone, :course_interest, :source, :experience, :message, :quiz_result, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, lead); err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// List returns leads matching the provided filters, newest first.
func (r *LeadRepository) List(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	base := "FROM leads WHERE 1=1"
	var args []interface{}
	if filter.Source != "" {
		base += fmt.Sprintf(" AND LOWER(source) = $%d", len(args)+1)
		args = append(args, strings.ToLower(filter.Source))
	}
	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", leadColumns, base)
	var leads []models.Lead
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// FindByID fetches a lead by identifier.
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads WHERE id = $1 LIMIT 1", leadColumns)
	var lead models.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lead by id: %w", err)
	}
	return &lead, nil
}
