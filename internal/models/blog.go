package models

import "time"

// BlogPost represents a blog article row.
type BlogPost struct {
	ID            string    `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Slug          string    `db:"slug" json:"slug"`
	Content       string    `db:"content" json:"content"`
	Excerpt       string    `db:"excerpt" json:"excerpt"`
	Category      string    `db:"category" json:"category"`
	FeaturedImage *string   `db:"featured_image" json:"featured_image,omitempty"`
	AuthorID      *string   `db:"author_id" json:"author_id,omitempty"`
	IsPublished   bool      `db:"is_published" json:"is_published"`
	ReadingTime   int       `db:"reading_time" json:"reading_time"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// BlogFilter captures supported filters for listing blog posts.
type BlogFilter struct {
	Published *bool
	Category  string
}
