package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
)

// TeacherHandler handles teacher management.
type TeacherHandler struct {
	teacherService *service.TeacherService
}

func NewTeacherHandler(teacherService *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// ListTeachers godoc
// GET /api/v1/teachers[?field=&value=]
// salary is compared numerically; every other field as text.
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	ctx := c.Request.Context()

	var teachers []*model.Teacher
	if field, value, ok := fieldFilter(c); ok {
		var v any = value
		if field == model.TeacherSalary {
			v = numericValue(value)
		}
		teachers = h.teacherService.ListBy(ctx, field, v)
	} else {
		teachers = h.teacherService.List(ctx)
	}

	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher godoc
// GET /api/v1/teachers/:id
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.teacherService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// GetTeacherClasses godoc
// GET /api/v1/teachers/:id/classes
func (h *TeacherHandler) GetTeacherClasses(c *gin.Context) {
	classes, err := h.teacherService.GetClasses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateTeacher godoc
// POST /api/v1/teachers
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req model.Teacher
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"teacher": teacher})
}

// UpdateTeacher godoc
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) UpdateTeacher(c *gin.Context) {
	var patch model.TeacherPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"teacher": teacher})
}

// DeleteTeacher godoc
// DELETE /api/v1/teachers/:id
// Fails with 403 DEPENDENCY_LOCK while the teacher leads a class.
func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	if err := h.teacherService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
