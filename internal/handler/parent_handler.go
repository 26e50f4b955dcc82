package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/registry/internal/model"
	"github.com/stemsi/registry/internal/response"
	"github.com/stemsi/registry/internal/service"
	"github.com/stemsi/registry/internal/validator"
)

type ParentHandler struct {
	parentService *service.ParentService
}

func NewParentHandler(parentService *service.ParentService) *ParentHandler {
	return &ParentHandler{parentService: parentService}
}

// ListParents godoc
// GET /api/v1/parents[?field=&value=]
func (h *ParentHandler) ListParents(c *gin.Context) {
	ctx := c.Request.Context()

	var parents []*model.Parent
	if field, value, ok := fieldFilter(c); ok {
		parents = h.parentService.ListBy(ctx, field, value)
	} else {
		parents = h.parentService.List(ctx)
	}

	response.Success(c, http.StatusOK, gin.H{"parents": parents})
}

// GetParent godoc
// GET /api/v1/parents/:id
func (h *ParentHandler) GetParent(c *gin.Context) {
	parent, err := h.parentService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// GetParentStudents godoc
// GET /api/v1/parents/:id/students
func (h *ParentHandler) GetParentStudents(c *gin.Context) {
	students, err := h.parentService.GetStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// CreateParent godoc
// POST /api/v1/parents
func (h *ParentHandler) CreateParent(c *gin.Context) {
	var req model.Parent
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	parent, err := h.parentService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"parent": parent})
}

// UpdateParent godoc
// PUT /api/v1/parents/:id
func (h *ParentHandler) UpdateParent(c *gin.Context) {
	var patch model.ParentPatch
	if fields := validator.Bind(c, &patch); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	parent, err := h.parentService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// DeleteParent godoc
// DELETE /api/v1/parents/:id
// Fails with 403 DEPENDENCY_LOCK while a student lists the parent.
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	if err := h.parentService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
