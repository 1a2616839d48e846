package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acadtrack/tracker-api/internal/models"
)

const selectMarksRecord = `SELECT m.id, m.student_id, m.course_id, m.score, m.created_at,
	u.name AS student_name, u.email AS student_email,
	c.name AS course_name, c.section AS course_section
FROM marks m
JOIN users u ON u.id = m.student_id
JOIN courses c ON c.id = m.course_id`

// MarksRepository provides database access for the marks ledger.
type MarksRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewMarksRepository creates a new instance of MarksRepository.
func NewMarksRepository(db *sqlx.DB) *MarksRepository {
	return &MarksRepository{db: db}
}

// WithMetrics attaches a query observer and returns the repository.
func (r *MarksRepository) WithMetrics(obs QueryObserver) *MarksRepository {
	r.metrics = obs
	return r
}

// Insert appends a new marks row.
func (r *MarksRepository) Insert(ctx context.Context, m *models.Marks) error {
	defer observeQuery(r.metrics, "marks.insert", time.Now())
	m.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO marks (student_id, course_id, score, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, m.StudentID, m.CourseID, m.Score, m.CreatedAt).Scan(&m.ID); err != nil {
		return fmt.Errorf("insert marks: %w", err)
	}
	return nil
}

// ListByStudent returns the student's marks in insertion order.
func (r *MarksRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.MarksRecord, error) {
	defer observeQuery(r.metrics, "marks.list_by_student", time.Now())
	query := selectMarksRecord + ` WHERE m.student_id = $1 ORDER BY m.id ASC`
	var records []models.MarksRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list marks by student: %w", err)
	}
	return records, nil
}

// ListByCourse returns the course's marks in insertion order.
func (r *MarksRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.MarksRecord, error) {
	defer observeQuery(r.metrics, "marks.list_by_course", time.Now())
	query := selectMarksRecord + ` WHERE m.course_id = $1 ORDER BY m.id ASC`
	var records []models.MarksRecord
	if err := r.db.SelectContext(ctx, &records, query, courseID); err != nil {
		return nil, fmt.Errorf("list marks by course: %w", err)
	}
	return records, nil
}
