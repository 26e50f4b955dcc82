package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
)

// StudentHandler handles student management.
type StudentHandler struct {
	studentService *service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListStudents godoc
// GET /api/v1/students[?field=&value=]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	ctx := c.Request.Context()

	var students []*model.Student
	if field, value, ok := fieldFilter(c); ok {
		students = h.studentService.ListBy(ctx, field, value)
	} else {
		students = h.studentService.List(ctx)
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// GetStudentClass godoc
// GET /api/v1/students/:id/class
func (h *StudentHandler) GetStudentClass(c *gin.Context) {
	class, err := h.studentService.GetClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// GetStudentParents godoc
// GET /api/v1/students/:id/parents
func (h *StudentHandler) GetStudentParents(c *gin.Context) {
	parents, err := h.studentService.GetParents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parents": parents})
}

// CreateStudent godoc
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.Student
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var patch model.StudentPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.studentService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
