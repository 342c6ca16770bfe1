package models

import "time"

// Testimonial represents a student testimonial row. The course name is
// denormalised so testimonials survive course deletion.
type Testimonial struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	CourseID   *string   `db:"course_id" json:"course_id,omitempty"`
	CourseName string    `db:"course_name" json:"course_name"`
	Rating     int       `db:"rating" json:"rating"`
	Review     string    `db:"review" json:"review"`
	JobTitle   *string   `db:"job_title" json:"job_title,omitempty"`
	Company    *string   `db:"company" json:"company,omitempty"`
	Image      *string   `db:"image" json:"image,omitempty"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TestimonialFilter captures supported filters for listing testimonials.
type TestimonialFilter struct {
	Approved *bool
}
