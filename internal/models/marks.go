package models

import "time"

// Marks represents a single score entry linking a student and a course.
type Marks struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Score     float64   `db:"score" json:"score"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MarksRecord extends the row with student and course summaries.
type MarksRecord struct {
	Marks
	StudentName   string `db:"student_name" json:"student_name"`
	StudentEmail  string `db:"student_email" json:"student_email"`
	CourseName    string `db:"course_name" json:"course_name"`
	CourseSection string `db:"course_section" json:"course_section"`
}
