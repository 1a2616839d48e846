package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
	"github.com/acadtrack/tracker-api/pkg/export"
)

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult bundles rendered bytes with transport metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders course ledgers as downloadable sheets.
type ExportService struct {
	attendance attendanceRepository
	marks      marksRepository
	courses    courseLookup
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService creates an instance of ExportService.
func NewExportService(attendance attendanceRepository, marks marksRepository, courses courseLookup, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		attendance: attendance,
		marks:      marks,
		courses:    courses,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// CourseAttendance renders the attendance sheet for a course.
func (s *ExportService) CourseAttendance(ctx context.Context, courseID int64, format ExportFormat) (*ExportResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, mapLookupErr(err, "course not found", "failed to resolve course")
	}

	records, err := s.attendance.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Email", "Date", "Present", "Remarks"},
	}
	for _, rec := range records {
		remarks := ""
		if rec.Remarks != nil {
			remarks = *rec.Remarks
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student": rec.StudentName,
			"Email":   rec.StudentEmail,
			"Date":    rec.Date.Format("2006-01-02"),
			"Present": strconv.FormatBool(rec.Present),
			"Remarks": remarks,
		})
	}

	title := fmt.Sprintf("Attendance %s %s", course.Name, course.Section)
	return s.render(dataset, title, fmt.Sprintf("attendance-course-%d", courseID), format)
}

// CourseMarks renders the marks sheet for a course.
func (s *ExportService) CourseMarks(ctx context.Context, courseID int64, format ExportFormat) (*ExportResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, mapLookupErr(err, "course not found", "failed to resolve course")
	}

	records, err := s.marks.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Email", "Score"},
	}
	for _, rec := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student": rec.StudentName,
			"Email":   rec.StudentEmail,
			"Score":   strconv.FormatFloat(rec.Score, 'f', -1, 64),
		})
	}

	title := fmt.Sprintf("Marks %s %s", course.Name, course.Section)
	return s.render(dataset, title, fmt.Sprintf("marks-course-%d", courseID), format)
}

func (s *ExportService) render(dataset export.Dataset, title, basename string, format ExportFormat) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: basename + ".csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: basename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
