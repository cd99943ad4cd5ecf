package handler

import (
	specapp "github.com/apitest/backend/internal/application/spec"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InterfaceHandler handles API endpoints for interface definitions
type InterfaceHandler struct {
	BaseHandler
	ifaceService *specapp.InterfaceService
}

// NewInterfaceHandler creates a new InterfaceHandler
func NewInterfaceHandler(ifaceService *specapp.InterfaceService) *InterfaceHandler {
	return &InterfaceHandler{ifaceService: ifaceService}
}

// CreateInterfaceRequest represents a request to register an interface
type CreateInterfaceRequest struct {
	ProjectID      string            `json:"project_id" binding:"required,uuid"`
	Name           string            `json:"name" binding:"required,min=1,max=200"`
	URL            string            `json:"url" binding:"required"`
	Method         string            `json:"method" binding:"required"`
	DefaultHeaders map[string]string `json:"default_headers"`
}

// Create registers a new interface under a project
func (h *InterfaceHandler) Create(c *gin.Context) {
	var req CreateInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	iface, err := h.ifaceService.Create(c.Request.Context(), specapp.CreateInterfaceRequest{
		ProjectID:      projectID,
		Name:           req.Name,
		URL:            req.URL,
		Method:         req.Method,
		DefaultHeaders: req.DefaultHeaders,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, iface)
}

// GetByID retrieves an interface by its ID
func (h *InterfaceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interface ID format")
		return
	}

	iface, err := h.ifaceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, iface)
}

// ListByProject retrieves the interfaces of a project
func (h *InterfaceHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ifaces, total, err := h.ifaceService.ListByProject(c.Request.Context(), projectID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, ifaces, total, req.Page, req.PageSize)
}

// ListParameters retrieves the normalized parameters of an interface
func (h *InterfaceHandler) ListParameters(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interface ID format")
		return
	}

	params, err := h.ifaceService.ListParameters(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, params)
}

// Delete removes an interface together with its parameters and cases
func (h *InterfaceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid interface ID format")
		return
	}

	if err := h.ifaceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
