package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/models"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
)

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	DeleteCascade(ctx context.Context, id int64) error
}

type courseUserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CreateCourseRequest is the payload for registering a course.
type CreateCourseRequest struct {
	Name      string `json:"name" validate:"required"`
	Section   string `json:"section" validate:"required"`
	TeacherID *int64 `json:"teacher_id"`
}

// CourseService handles the course registry workflows.
type CourseService struct {
	repo      courseRepository
	users     courseUserLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates an instance of CourseService.
func NewCourseService(repo courseRepository, users courseUserLookup, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CourseService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create registers a new course. Name and section must be non-blank; the
// owning teacher is optional but must resolve when supplied.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Section) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name and section must not be blank")
	}

	if req.TeacherID != nil {
		if _, err := s.users.FindByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve teacher")
		}
	}

	course := &models.Course{
		Name:      strings.TrimSpace(req.Name),
		Section:   strings.TrimSpace(req.Section),
		TeacherID: req.TeacherID,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	return course, nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Delete removes a course and every attendance and marks row referencing
// it, as one logical unit.
func (s *CourseService) Delete(ctx context.Context, id int64, actorID int64) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}

	detail, _ := json.Marshal(map[string]interface{}{"name": course.Name, "section": course.Section})
	if err := s.users.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionCourseDelete,
		Resource:   "courses",
		ResourceID: &course.ID,
		Detail:     detail,
	}); err != nil {
		s.logger.Warn("failed to record course delete audit log", zap.Error(err))
	}

	return nil
}
