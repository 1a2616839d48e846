package models

import "time"

// Attendance represents a single attendance row. Rows are append-only:
// marking the same student twice on one day produces two rows.
type Attendance struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Date      time.Time `db:"date" json:"date"`
	Present   bool      `db:"present" json:"present"`
	Remarks   *string   `db:"remarks" json:"remarks,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AttendanceRecord extends the row with student and course summaries.
type AttendanceRecord struct {
	Attendance
	StudentName   string `db:"student_name" json:"student_name"`
	StudentEmail  string `db:"student_email" json:"student_email"`
	CourseName    string `db:"course_name" json:"course_name"`
	CourseSection string `db:"course_section" json:"course_section"`
}
