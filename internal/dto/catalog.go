package dto

import "github.com/brightpath-academy/institute-api/internal/models"

// CourseRequest captures course create/update payloads.
type CourseRequest struct {
	Title                string                    `json:"title" validate:"required,min=3,max=200"`
	Slug                 string                    `json:"slug" validate:"required,min=3,max=200"`
	Description          string                    `json:"description" validate:"required"`
	Duration             string                    `json:"duration" validate:"required"`
	Mode                 models.CourseMode         `json:"mode" validate:"required,oneof=online offline hybrid"`
	Level                models.CourseLevel        `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price                *float64                  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Features             models.StringList         `json:"features,omitempty"`
	BatchDates           models.StringList         `json:"batch_dates,omitempty"`
	Icon                 string                    `json:"icon,omitempty"`
	Category             string                    `json:"category" validate:"required"`
	IsActive             bool                      `json:"is_active"`
	Overview             *string                   `json:"overview,omitempty"`
	MainImage            *string                   `json:"main_image,omitempty"`
	Logo                 *string                   `json:"logo,omitempty"`
	Curriculum           models.CurriculumSections `json:"curriculum,omitempty"`
	Batches              models.CourseBatches      `json:"batches,omitempty"`
	Fees                 models.FeePlans           `json:"fees,omitempty"`
	CareerOpportunities  models.StringList         `json:"career_opportunities,omitempty"`
	ToolsAndTechnologies *string                   `json:"tools_and_technologies,omitempty"`
	WhatYouWillLearn     *string                   `json:"what_you_will_learn,omitempty"`
}

// BlogPostRequest captures blog post create/update payloads. ReadingTime
// is optional and derived from the content length when omitted.
type BlogPostRequest struct {
	Title         string  `json:"title" validate:"required,min=3,max=200"`
	Slug          string  `json:"slug" validate:"required,min=3,max=200"`
	Content       string  `json:"content" validate:"required"`
	Excerpt       string  `json:"excerpt" validate:"required,max=500"`
	Category      string  `json:"category" validate:"required"`
	FeaturedImage *string `json:"featured_image,omitempty"`
	IsPublished   bool    `json:"is_published"`
	ReadingTime   *int    `json:"reading_time,omitempty" validate:"omitempty,gte=1"`
}

// TestimonialRequest captures testimonial create/update payloads.
type TestimonialRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=120"`
	CourseID   *string `json:"course_id,omitempty"`
	CourseName string  `json:"course_name" validate:"required"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
	Review     string  `json:"review" validate:"required"`
	JobTitle   *string `json:"job_title,omitempty"`
	Company    *string `json:"company,omitempty"`
	Image      *string `json:"image,omitempty"`
	IsApproved bool    `json:"is_approved"`
}

// FAQRequest captures FAQ create/update payloads.
type FAQRequest struct {
	Question  string `json:"question" validate:"required,min=5"`
	Answer    string `json:"answer" validate:"required"`
	Category  string `json:"category" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	IsActive  bool   `json:"is_active"`
}
