package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acadtrack/tracker-api/internal/models"
)

// selectAttendanceRecord joins the ledger row with its student and course
// summaries. The password hash column is never selected.
const selectAttendanceRecord = `SELECT a.id, a.student_id, a.course_id, a.date, a.present, a.remarks, a.created_at,
	u.name AS student_name, u.email AS student_email,
	c.name AS course_name, c.section AS course_section
FROM attendances a
JOIN users u ON u.id = a.student_id
JOIN courses c ON c.id = a.course_id`

// AttendanceRepository provides database access for the attendance ledger.
type AttendanceRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// WithMetrics attaches a query observer and returns the repository.
func (r *AttendanceRepository) WithMetrics(obs QueryObserver) *AttendanceRepository {
	r.metrics = obs
	return r
}

// Insert appends a new attendance row. There is no upsert: every call
// creates a new row even for the same student, course and date.
func (r *AttendanceRepository) Insert(ctx context.Context, att *models.Attendance) error {
	defer observeQuery(r.metrics, "attendances.insert", time.Now())
	att.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO attendances (student_id, course_id, date, present, remarks, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, att.StudentID, att.CourseID, att.Date, att.Present, att.Remarks, att.CreatedAt).Scan(&att.ID); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// ListByStudent returns the student's attendance in insertion order.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	defer observeQuery(r.metrics, "attendances.list_by_student", time.Now())
	query := selectAttendanceRecord + ` WHERE a.student_id = $1 ORDER BY a.id ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance by student: %w", err)
	}
	return records, nil
}

// ListByCourse returns the course's attendance in insertion order.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.AttendanceRecord, error) {
	defer observeQuery(r.metrics, "attendances.list_by_course", time.Now())
	query := selectAttendanceRecord + ` WHERE a.course_id = $1 ORDER BY a.id ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, courseID); err != nil {
		return nil, fmt.Errorf("list attendance by course: %w", err)
	}
	return records, nil
}

// ListByDate returns every attendance row for the given calendar date.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceRecord, error) {
	defer observeQuery(r.metrics, "attendances.list_by_date", time.Now())
	query := selectAttendanceRecord + ` WHERE a.date = $1 ORDER BY a.id ASC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, date); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}
