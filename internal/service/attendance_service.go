package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/models"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

type attendanceRepository interface {
	Insert(ctx context.Context, att *models.Attendance) error
	ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.AttendanceRecord, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.AttendanceRecord, error)
}

type studentLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type courseLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// MarkAttendanceRequest is the payload for marking attendance.
type MarkAttendanceRequest struct {
	StudentID int64   `json:"student_id" validate:"required"`
	CourseID  int64   `json:"course_id" validate:"required"`
	Date      string  `json:"date" validate:"required"`
	Present   bool    `json:"present"`
	Remarks   *string `json:"remarks"`
}

// AttendanceService handles the attendance ledger workflows.
type AttendanceService struct {
	repo      attendanceRepository
	students  studentLookup
	courses   courseLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService creates an instance of AttendanceService.
func NewAttendanceService(repo attendanceRepository, students studentLookup, courses courseLookup, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{repo: repo, students: students, courses: courses, validator: validate, logger: logger}
}

// Mark appends a new attendance row after resolving the student and course.
// Marking the same day twice creates a second row; the ledger keeps every
// entry.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}

	student, err := s.resolveStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	course, err := s.resolveCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	att := &models.Attendance{
		StudentID: student.ID,
		CourseID:  course.ID,
		Date:      date,
		Present:   req.Present,
		Remarks:   req.Remarks,
	}

	if err := s.repo.Insert(ctx, att); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist attendance")
	}

	return &models.AttendanceRecord{
		Attendance:    *att,
		StudentName:   student.Name,
		StudentEmail:  student.Email,
		CourseName:    course.Name,
		CourseSection: course.Section,
	}, nil
}

// ListByStudent returns the student's attendance. Unknown student ids fail
// with not found rather than returning an empty list.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	if _, err := s.resolveStudent(ctx, studentID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ListByCourse returns the course's attendance.
func (s *AttendanceService) ListByCourse(ctx context.Context, courseID int64) ([]models.AttendanceRecord, error) {
	if _, err := s.resolveCourse(ctx, courseID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ListByDate returns every attendance row on a calendar date.
func (s *AttendanceService) ListByDate(ctx context.Context, raw string) ([]models.AttendanceRecord, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use YYYY-MM-DD")
	}

	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

func (s *AttendanceService) resolveStudent(ctx context.Context, id int64) (*models.User, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "student not found", "failed to resolve student")
	}
	return student, nil
}

func (s *AttendanceService) resolveCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "course not found", "failed to resolve course")
	}
	return course, nil
}
