package models

import "time"

// FAQ represents a frequently-asked-question row. Ordering on public
// pages follows the manual sort_order key.
type FAQ struct {
	ID        string    `db:"id" json:"id"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	Category  string    `db:"category" json:"category"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FAQFilter captures supported filters for listing FAQs.
type FAQFilter struct {
	Active *bool
}
