package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
)

// ClassHandler handles class management (CRUD and relations).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/classes[?field=&value=]
// Lists all classes, or those whose field equals value.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	ctx := c.Request.Context()

	var classes []*model.Class
	if field, value, ok := fieldFilter(c); ok {
		classes = h.classService.ListBy(ctx, field, value)
	} else {
		classes = h.classService.List(ctx)
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// GetClassTeacher godoc
// GET /api/v1/classes/:id/teacher
// Responds 404 DEPENDENCY_LOCK when the class has no teacher.
func (h *ClassHandler) GetClassTeacher(c *gin.Context) {
	teacher, err := h.classService.GetTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// GetClassStudents godoc
// GET /api/v1/classes/:id/students
func (h *ClassHandler) GetClassStudents(c *gin.Context) {
	students, err := h.classService.GetStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// CreateClass godoc
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.Class
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/classes/:id
// Only the keys present in the body change; "teacher": null unassigns.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	var patch model.ClassPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// DeleteClass godoc
// DELETE /api/v1/classes/:id
// Fails with 403 DEPENDENCY_LOCK while students are enrolled.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	if err := h.classService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
