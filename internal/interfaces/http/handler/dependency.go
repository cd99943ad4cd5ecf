package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	specapp "github.com/apitest/backend/internal/application/spec"
)

// DependencyHandler exposes dependency metadata endpoints
type DependencyHandler struct {
	BaseHandler
	dependencyService *specapp.DependencyService
}

// NewDependencyHandler creates a new DependencyHandler
func NewDependencyHandler(dependencyService *specapp.DependencyService) *DependencyHandler {
	return &DependencyHandler{dependencyService: dependencyService}
}

// ListDependenciesRequest filters dependencies by their source record
type ListDependenciesRequest struct {
	SourceKind string `form:"source_kind" binding:"required,oneof=interface case"`
	SourceID   string `form:"source_id" binding:"required,uuid"`
}

// Create declares a dependency between two records
func (h *DependencyHandler) Create(c *gin.Context) {
	var req specapp.CreateDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dep, err := h.dependencyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dep)
}

// ListBySource returns the dependencies declared by a source record
func (h *DependencyHandler) ListBySource(c *gin.Context) {
	var req ListDependenciesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		h.BadRequest(c, "invalid source_id")
		return
	}

	deps, err := h.dependencyService.ListBySource(c.Request.Context(), req.SourceKind, sourceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deps)
}

// Delete removes a dependency declaration
func (h *DependencyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.dependencyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
