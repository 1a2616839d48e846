package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/acadtrack/tracker-api/internal/models"
)

// CourseRepository provides database access for the course registry.
type CourseRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// WithMetrics attaches a query observer and returns the repository.
func (r *CourseRepository) WithMetrics(obs QueryObserver) *CourseRepository {
	r.metrics = obs
	return r
}

// Create inserts a new course and fills in the generated identifier.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	defer observeQuery(r.metrics, "courses.create", time.Now())
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	const query = `INSERT INTO courses (name, section, teacher_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, course.Name, course.Section, course.TeacherID, course.CreatedAt, course.UpdatedAt).Scan(&course.ID); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	defer observeQuery(r.metrics, "courses.find_by_id", time.Now())
	const query = `SELECT id, name, section, teacher_id, created_at, updated_at FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// List returns every course in stable insertion order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	defer observeQuery(r.metrics, "courses.list", time.Now())
	const query = `SELECT id, name, section, teacher_id, created_at, updated_at FROM courses ORDER BY id ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// DeleteCascade removes a course together with every attendance and marks
// row referencing it, in one transaction.
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) error {
	defer observeQuery(r.metrics, "courses.delete_cascade", time.Now())
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM attendances WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance for course: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM marks WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("delete marks for course: %w", err)
	}

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	affected, raErr := res.RowsAffected()
	if raErr == nil && affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course tx: %w", err)
	}
	return nil
}
