package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadtrack/tracker-api/internal/service"
	appErrors "github.com/acadtrack/tracker-api/pkg/errors"
	"github.com/acadtrack/tracker-api/pkg/response"
)

// MarksHandler wires HTTP endpoints to the marks service.
type MarksHandler struct {
	service *service.MarksService
	export  *service.ExportService
}

// NewMarksHandler creates a new handler.
func NewMarksHandler(svc *service.MarksService, export *service.ExportService) *MarksHandler {
	return &MarksHandler{service: svc, export: export}
}

// Add godoc
// @Summary Add marks
// @Description Record a score between 0 and 100 for a student in a course
// @Tags Marks
// @Accept json
// @Produce json
// @Param payload body service.AddScoreRequest true "Marks payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks [post]
func (h *MarksHandler) Add(c *gin.Context) {
	var req service.AddScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid marks payload"))
		return
	}

	record, err := h.service.AddScore(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// ListByStudent godoc
// @Summary List marks by student
// @Description List every marks entry for a student
// @Tags Marks
// @Produce json
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks/student/{studentId} [get]
func (h *MarksHandler) ListByStudent(c *gin.Context) {
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
// @Summary List marks by course
// @Description List every marks entry for a course
// @Tags Marks
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks/course/{courseId} [get]
func (h *MarksHandler) ListByCourse(c *gin.Context) {
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

// Export godoc
// @Summary Export course marks
// @Description Download the marks sheet for a course as CSV or PDF
// @Tags Marks
// @Produce text/csv
// @Param courseId path int true "Course ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /marks/course/{courseId}/export [get]
func (h *MarksHandler) Export(c *gin.Context) {
	id, err := idParam(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.export.CourseMarks(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
