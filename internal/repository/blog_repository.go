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

const blogColumns = `id, title, slug, content, excerpt, category, featured_image, author_id, is_published, reading_time, created_at, updated_at`

// BlogRepository manages persistence for blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository constructs a BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// List returns blog posts matching the provided filters, newest first.
func (r *BlogRepository) List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, error) {
	base := "FROM blog_posts WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Published != nil {
		conditions = append(conditions, fmt.Sprintf("is_published = $%d", len(args)+1))
		args = append(args, *filter.Published)
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = $%d", len(args)+1))
		args = append(args, strings.ToLower(filter.Category))
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC", blogColumns, base)
	var posts []models.BlogPost
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, nil
}

// FindByID fetches a blog post by identifier.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := fmt.Sprintf("SELECT %s FROM blog_posts WHERE id = $1 LIMIT 1", blogColumns)
	var post models.BlogPost
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return &post, nil
}

// FindBySlug fetches a blog post by its URL slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := fmt.Sprintf("SELECT %s FROM blog_posts WHERE slug = $1 LIMIT 1", blogColumns)
	var post models.BlogPost
	if err := r.db.GetContext(ctx, &post, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return &post, nil
}

// ExistsBySlug checks if a post with the given slug exists, optionally excluding an ID.
func (r *BlogRepository) ExistsBySlug(ctx context.Context, slug string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM blog_posts WHERE slug = $1"
	args := []interface{}{slug}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return true, nil
}

// Create inserts a new blog post.
func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	const query = `INSERT INTO blog_posts (id, title, slug, content, excerpt, category, featured_image, author_id, is_published, reading_time, created_at, updated_at)
        VALUES (:id, :title, :slug, :content, :excerpt, :category, :featured_image, :author_id, :is_published, :reading_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create blog post: %w", err)
	}
	return nil
}

// Update modifies an existing blog post.
func (r *BlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	post.UpdatedAt = time.Now().UTC()
	const query = `UPDATE blog_posts SET title = :title, slug = :slug, content = :content, excerpt = :excerpt, category = :category, featured_image = :featured_image, author_id = :author_id, is_published = :is_published, reading_time = :reading_time, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a blog post permanently.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM blog_posts WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
