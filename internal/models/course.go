package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// CourseMode enumerates delivery modes for a course.
type CourseMode string

const (
	ModeOnline  CourseMode = "online"
	ModeOffline CourseMode = "offline"
	ModeHybrid  CourseMode = "hybrid"
)

// CourseLevel enumerates difficulty levels.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// StringList is a JSONB-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// CurriculumSection groups syllabus items under a titled section.
type CurriculumSection struct {
	SectionTitle string   `json:"section_title"`
	Items        []string `json:"items"`
}

// CurriculumSections is the JSONB-backed curriculum of a course.
type CurriculumSections []CurriculumSection

func (c CurriculumSections) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

func (c *CurriculumSections) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// CourseBatch describes an upcoming batch schedule entry.
type CourseBatch struct {
	StartDate  string `json:"start_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Mode       string `json:"mode"`
	Instructor string `json:"instructor"`
}

// CourseBatches is the JSONB-backed batch list of a course.
type CourseBatches []CourseBatch

func (b CourseBatches) Value() (driver.Value, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b)
}

func (b *CourseBatches) Scan(src interface{}) error {
	return scanJSON(src, b)
}

// FeePlan is one labelled fee option for a course.
type FeePlan struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes,omitempty"`
}

// FeePlans is the JSONB-backed fee structure of a course.
type FeePlans []FeePlan

func (f FeePlans) Value() (driver.Value, error) {
	if f == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f)
}

func (f *FeePlans) Scan(src interface{}) error {
	return scanJSON(src, f)
}

// Course represents a catalog course row.
type Course struct {
	ID                   string             `db:"id" json:"id"`
	Title                string             `db:"title" json:"title"`
	Slug                 string             `db:"slug" json:"slug"`
	Description          string             `db:"description" json:"description"`
	Duration             string             `db:"duration" json:"duration"`
	Mode                 CourseMode         `db:"mode" json:"mode"`
	Level                CourseLevel        `db:"level" json:"level"`
	Price                *float64           `db:"price" json:"price,omitempty"`
	Features             StringList         `db:"features" json:"features"`
	SyllabusPath         *string            `db:"syllabus_path" json:"-"`
	BatchDates           StringList         `db:"batch_dates" json:"batch_dates"`
	Icon                 string             `db:"icon" json:"icon"`
	Category             string             `db:"category" json:"category"`
	IsActive             bool               `db:"is_active" json:"is_active"`
	Overview             *string            `db:"overview" json:"overview,omitempty"`
	MainImage            *string            `db:"main_image" json:"main_image,omitempty"`
	Logo                 *string            `db:"logo" json:"logo,omitempty"`
	Curriculum           CurriculumSections `db:"curriculum" json:"curriculum"`
	Batches              CourseBatches      `db:"batches" json:"batches"`
	Fees                 FeePlans           `db:"fees" json:"fees"`
	CareerOpportunities  StringList         `db:"career_opportunities" json:"career_opportunities"`
	ToolsAndTechnologies *string            `db:"tools_and_technologies" json:"tools_and_technologies,omitempty"`
	WhatYouWillLearn     *string            `db:"what_you_will_learn" json:"what_you_will_learn,omitempty"`
	CreatedAt            time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `db:"updated_at" json:"updated_at"`
}

// HasSyllabus reports whether a syllabus file is attached.
func (c *Course) HasSyllabus() bool {
	return c.SyllabusPath != nil && *c.SyllabusPath != ""
}

// CourseFilter captures supported filters for listing courses.
type CourseFilter struct {
	Active   *bool
	Category string
}
