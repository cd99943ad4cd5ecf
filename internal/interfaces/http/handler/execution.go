package handler

import (
	executionapp "github.com/apitest/backend/internal/application/execution"
	"github.com/gin-gonic/gin"
)

// ExecutionHandler handles test plan and batch execution endpoints
type ExecutionHandler struct {
	BaseHandler
	planService *executionapp.PlanService
}

// NewExecutionHandler creates a new ExecutionHandler
func NewExecutionHandler(planService *executionapp.PlanService) *ExecutionHandler {
	return &ExecutionHandler{planService: planService}
}

// ReplaceCasesRequest carries the new ordered case list of a plan
type ReplaceCasesRequest struct {
	CaseIDs []string `json:"case_ids" binding:"required"`
}

// RunCasesRequest triggers an ad-hoc batch over a hand-picked case list
type RunCasesRequest struct {
	CaseIDs []string `json:"case_ids" binding:"required,min=1"`
	EnvURL  string   `json:"env_url" binding:"required"`
}

// BatchStartedResponse acknowledges an accepted execution request
type BatchStartedResponse struct {
	BatchID string `json:"batch_id"`
}

// CreatePlan stores a new test plan
func (h *ExecutionHandler) CreatePlan(c *gin.Context) {
	var req executionapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req, getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, plan)
}

// GetPlan retrieves a test plan by its ID
func (h *ExecutionHandler) GetPlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// ListPlans retrieves a paginated list of test plans
func (h *ExecutionHandler) ListPlans(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plans, total, err := h.planService.ListPlans(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, plans, total, req.Page, req.PageSize)
}

// ReplaceCases swaps the ordered case list of a plan
func (h *ExecutionHandler) ReplaceCases(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	var req ReplaceCasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.planService.ReplaceCases(c.Request.Context(), id, req.CaseIDs); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DeletePlan removes a test plan and its case links
func (h *ExecutionHandler) DeletePlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ExecutePlan starts a batch over the cases of a plan.
// The batch runs in the background; the response carries its ID for polling.
func (h *ExecutionHandler) ExecutePlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	batchID, err := h.planService.ExecutePlan(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Accepted(c, BatchStartedResponse{BatchID: batchID.String()})
}

// RunCases starts an ad-hoc batch over an explicit case list
func (h *ExecutionHandler) RunCases(c *gin.Context) {
	var req RunCasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batchID, err := h.planService.ExecuteCases(c.Request.Context(), req.CaseIDs, req.EnvURL)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Accepted(c, BatchStartedResponse{BatchID: batchID.String()})
}

// GetBatch retrieves a batch summary by its ID
func (h *ExecutionHandler) GetBatch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	batch, err := h.planService.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListBatches retrieves a paginated list of batches
func (h *ExecutionHandler) ListBatches(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batches, total, err := h.planService.ListBatches(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, batches, total, req.Page, req.PageSize)
}

// GetBatchReport retrieves a batch together with its per-case results
func (h *ExecutionHandler) GetBatchReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	report, err := h.planService.GetBatchReport(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
