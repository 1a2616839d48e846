package models

import "time"

// Course represents a taught course stored in the courses table.
type Course struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Section   string    `db:"section" json:"section"`
	TeacherID *int64    `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CourseSummary is the compact projection embedded in ledger records.
type CourseSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Section string `json:"section"`
}

// Summary returns the public projection of the course.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Name: c.Name, Section: c.Section}
}
