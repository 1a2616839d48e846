package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/models"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

type marksRepository interface {
	Insert(ctx context.Context, m *models.Marks) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.MarksRecord, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.MarksRecord, error)
}

// AddScoreRequest is the payload for entering marks.
type AddScoreRequest struct {
	StudentID int64    `json:"student_id" validate:"required"`
	CourseID  int64    `json:"course_id" validate:"required"`
	Score     *float64 `json:"score" validate:"required"`
}

// MarksService handles the marks ledger workflows.
type MarksService struct {
	repo      marksRepository
	students  studentLookup
	courses   courseLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarksService creates an instance of MarksService.
func NewMarksService(repo marksRepository, students studentLookup, courses courseLookup, validate *validator.Validate, logger *zap.Logger) *MarksService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MarksService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

// AddScore persists a new marks row after validating the score bounds and
// resolving both references. The [0, 100] range is inclusive on both ends.
func (s *MarksService) AddScore(ctx context.Context, req AddScoreRequest) (*models.MarksRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	if *req.Score < 0 || *req.Score > 100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score must be between 0 and 100")
	}

	student, err := s.resolveStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	course, err := s.resolveCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	m := &models.Marks{
		StudentID: student.ID,
		CourseID:  course.ID,
		Score:     *req.Score,
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist marks")
	}

	return &models.MarksRecord{
		Marks:         *m,
		StudentName:   student.Name,
		StudentEmail:  student.Email,
		CourseName:    course.Name,
		CourseSection: course.Section,
	}, nil
}

// ListByStudent returns the student's marks. Unknown student ids fail with
// not found, matching the attendance ledger policy.
func (s *MarksService) ListByStudent(ctx context.Context, studentID int64) ([]models.MarksRecord, error) {
	if _, err := s.resolveStudent(ctx, studentID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}
	return records, nil
}

// ListByCourse returns the course's marks.
func (s *MarksService) ListByCourse(ctx context.Context, courseID int64) ([]models.MarksRecord, error) {
	if _, err := s.resolveCourse(ctx, courseID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}
	return records, nil
}

func (s *MarksService) resolveStudent(ctx context.Context, id int64) (*models.User, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "student not found", "failed to resolve student")
	}
	return student, nil
}

func (s *MarksService) resolveCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "course not found", "failed to resolve course")
	}
	return course, nil
}
