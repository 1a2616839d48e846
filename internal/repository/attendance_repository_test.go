package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadtrack/tracker-api/internal/models"
)

func attendanceRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "course_id", "date", "present", "remarks", "created_at",
		"student_name", "student_email", "course_name", "course_section",
	}).AddRow(int64(1), int64(2), int64(3), now, true, nil, now, "Sam", "s@x.com", "Math", "A")
}

func TestInsertAttendanceReturnsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendances (student_id, course_id, date, present, remarks, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WithArgs(int64(2), int64(3), date, true, nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))

	att := &models.Attendance{StudentID: 2, CourseID: 3, Date: date, Present: true}
	require.NoError(t, repo.Insert(context.Background(), att))
	assert.Equal(t, int64(21), att.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttendanceByStudent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("FROM attendances a").
		WithArgs(int64(2)).
		WillReturnRows(attendanceRows(time.Now()))

	records, err := repo.ListByStudent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sam", records[0].StudentName)
	assert.Equal(t, "Math", records[0].CourseName)
	assert.True(t, records[0].Present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttendanceByDate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM attendances a").
		WithArgs(date).
		WillReturnRows(attendanceRows(date))

	records, err := repo.ListByDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAttendanceByCourseEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery("FROM attendances a").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "course_id", "date", "present", "remarks", "created_at",
			"student_name", "student_email", "course_name", "course_section",
		}))

	records, err := repo.ListByCourse(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
