package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadtrack/tracker-api/internal/models"
)

func TestCreateCourseReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	teacherID := int64(3)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO courses (name, section, teacher_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id")).
		WithArgs("Math", "A", teacherID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	course := &models.Course{Name: "Math", Section: "A", TeacherID: &teacherID}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Equal(t, int64(11), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCoursesInsertionOrder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "section", "teacher_id", "created_at", "updated_at"}).
		AddRow(int64(1), "Math", "A", nil, now, now).
		AddRow(int64(2), "Physics", "B", int64(3), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, section, teacher_id, created_at, updated_at FROM courses ORDER BY id ASC")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, int64(1), courses[0].ID)
	assert.Equal(t, "Physics", courses[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCourseCascadeCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances WHERE course_id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM marks WHERE course_id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCourseCascadeRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances WHERE course_id = $1")).
		WithArgs(int64(2)).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 2)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCourseCascadeMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances WHERE course_id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM marks WHERE course_id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
