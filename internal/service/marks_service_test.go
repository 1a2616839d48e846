package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/models"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

type mockMarksRepo struct {
	inserted []*models.Marks
	records  []models.MarksRecord
	listErr  error
}

func (m *mockMarksRepo) Insert(ctx context.Context, mark *models.Marks) error {
	mark.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, mark)
	return nil
}

func (m *mockMarksRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.MarksRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockMarksRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.MarksRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func newMarksService(repo *mockMarksRepo) *MarksService {
	students := &mockStudentLookup{users: map[int64]*models.User{
		1: {ID: 1, Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent},
	}}
	courses := &mockCourseLookup{courses: map[int64]*models.Course{
		10: {ID: 10, Name: "Math", Section: "A"},
	}}
	return NewMarksService(repo, students, courses, validator.New(), zap.NewNop())
}

func score(v float64) *float64 { return &v }

func TestMarksServiceAddScoreSuccess(t *testing.T) {
	repo := &mockMarksRepo{}
	svc := newMarksService(repo)

	record, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 1, CourseID: 10, Score: score(87.5)})
	require.NoError(t, err)
	assert.Equal(t, 87.5, record.Score)
	assert.Equal(t, "Alice", record.StudentName)
	assert.Equal(t, "Math", record.CourseName)
	require.Len(t, repo.inserted, 1)
}

func TestMarksServiceAddScoreBoundaries(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	for _, v := range []float64{0, 100} {
		record, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 1, CourseID: 10, Score: score(v)})
		require.NoError(t, err)
		assert.Equal(t, v, record.Score)
	}
}

func TestMarksServiceAddScoreOutOfRange(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	for _, v := range []float64{-0.5, 100.5} {
		_, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 1, CourseID: 10, Score: score(v)})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestMarksServiceAddScoreMissingScore(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	_, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 1, CourseID: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMarksServiceAddScoreUnknownStudent(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	_, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 404, CourseID: 10, Score: score(50)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMarksServiceAddScoreUnknownCourse(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	_, err := svc.AddScore(context.Background(), AddScoreRequest{StudentID: 1, CourseID: 404, Score: score(50)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMarksServiceListByStudentUnknown(t *testing.T) {
	svc := newMarksService(&mockMarksRepo{})

	_, err := svc.ListByStudent(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMarksServiceListByCourseSuccess(t *testing.T) {
	repo := &mockMarksRepo{records: []models.MarksRecord{
		{Marks: models.Marks{ID: 1, StudentID: 1, CourseID: 10, Score: 90}},
	}}
	svc := newMarksService(repo)

	records, err := svc.ListByCourse(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
