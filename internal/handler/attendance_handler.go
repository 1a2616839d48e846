package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadtrack/tracker-api/internal/service"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
	"github.com/acadtrack/tracker-api/pkg/response"
)

// AttendanceHandler wires HTTP endpoints to the attendance service.
type AttendanceHandler struct {
	service *service.AttendanceService
	export  *service.ExportService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService, export *service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{service: svc, export: export}
}

// Mark godoc
// @Summary Mark attendance
// @Description Append an attendance entry for a student in a course
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// ListByStudent godoc
// @Summary List attendance by student
// @Description List every attendance entry for a student
// @Tags Attendance
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/student/{studentId} [get]
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	id, err := idParam(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.ListByStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// ListByCourse godoc
// @Summary List attendance by course
// @Description List every attendance entry for a course
// @Tags Attendance
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/course/{courseId} [get]
func (h *AttendanceHandler) ListByCourse(c *gin.Context) {
	id, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.ListByCourse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// ListByDate godoc
// @Summary List attendance by date
// @Description List every attendance entry on a calendar date
// @Tags Attendance
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance/date/{date} [get]
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	records, err := h.service.ListByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records, nil)
}

// Export godoc
// @Summary Export course attendance
// @Description Download the attendance sheet for a course as CSV or PDF
// @Tags Attendance
// @Produce text/csv
// @Param courseId path int true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/course/{courseId}/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	id, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.export.CourseAttendance(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
