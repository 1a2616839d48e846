package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/models"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

func newExportService(attendance *mockAttendanceRepo, marks *mockMarksRepo) *ExportService {
	courses := &mockCourseLookup{courses: map[int64]*models.Course{
		10: {ID: 10, Name: "Math", Section: "A"},
	}}
	return NewExportService(attendance, marks, courses, zap.NewNop())
}

func TestExportServiceCourseAttendanceCSV(t *testing.T) {
	remarks := "late"
	attendance := &mockAttendanceRepo{records: []models.AttendanceRecord{
		{
			Attendance:   models.Attendance{ID: 1, StudentID: 1, CourseID: 10, Date: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), Present: true, Remarks: &remarks},
			StudentName:  "Alice",
			StudentEmail: "alice@example.com",
		},
	}}
	svc := newExportService(attendance, &mockMarksRepo{})

	res, err := svc.CourseAttendance(context.Background(), 10, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Equal(t, "attendance-course-10.csv", res.Filename)

	body := string(res.Content)
	assert.True(t, strings.HasPrefix(body, "Student,Email,Date,Present,Remarks"))
	assert.Contains(t, body, "Alice,alice@example.com,2026-08-31,true,late")
}

func TestExportServiceCourseMarksPDF(t *testing.T) {
	marks := &mockMarksRepo{records: []models.MarksRecord{
		{Marks: models.Marks{ID: 1, StudentID: 1, CourseID: 10, Score: 92.5}, StudentName: "Alice", StudentEmail: "alice@example.com"},
	}}
	svc := newExportService(&mockAttendanceRepo{}, marks)

	res, err := svc.CourseMarks(context.Background(), 10, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, "marks-course-10.pdf", res.Filename)
	assert.True(t, strings.HasPrefix(string(res.Content), "%PDF"))
}

func TestExportServiceUnknownCourse(t *testing.T) {
	svc := newExportService(&mockAttendanceRepo{}, &mockMarksRepo{})

	_, err := svc.CourseAttendance(context.Background(), 404, FormatCSV)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceBadFormat(t *testing.T) {
	svc := newExportService(&mockAttendanceRepo{}, &mockMarksRepo{})

	_, err := svc.CourseMarks(context.Background(), 10, ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
