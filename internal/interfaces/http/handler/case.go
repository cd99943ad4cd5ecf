package handler

import (
	"encoding/json"
	"time"

	caseapp "github.com/apitest/backend/internal/application/testcase"
	"github.com/apitest/backend/internal/domain/testcase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseHandler handles test case API endpoints
type CaseHandler struct {
	BaseHandler
	caseService *caseapp.CaseService
}

// NewCaseHandler creates a new CaseHandler
func NewCaseHandler(caseService *caseapp.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// SynthesizeRequest names the interface whose cases should be generated
type SynthesizeRequest struct {
	InterfaceID string `json:"interface_id" binding:"required,uuid"`
}

// CreateCaseRequest represents a manually written test case
type CreateCaseRequest struct {
	InterfaceID    string            `json:"interface_id" binding:"required,uuid"`
	Name           string            `json:"name" binding:"required,min=1,max=300"`
	RequestParams  map[string]string `json:"request_params"`
	RequestHeaders map[string]string `json:"request_headers"`
	ExpectedResult string            `json:"expected_result"`
	Checks         []testcase.Check  `json:"checks" binding:"required,min=1"`
}

// CaseResponse is the API view of a stored test case
type CaseResponse struct {
	ID             string          `json:"id"`
	InterfaceID    string          `json:"interface_id"`
	Name           string          `json:"name"`
	RequestParams  json.RawMessage `json:"request_params,omitempty"`
	RequestHeaders json.RawMessage `json:"request_headers,omitempty"`
	ExpectedResult string          `json:"expected_result,omitempty"`
	AssertRule     json.RawMessage `json:"assert_rule,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toCaseResponse(tc *testcase.TestCase) CaseResponse {
	return CaseResponse{
		ID:             tc.ID.String(),
		InterfaceID:    tc.InterfaceID.String(),
		Name:           tc.Name,
		RequestParams:  json.RawMessage(tc.RequestParams),
		RequestHeaders: json.RawMessage(tc.RequestHeaders),
		ExpectedResult: tc.ExpectedResult,
		AssertRule:     json.RawMessage(tc.AssertRule),
		CreatedAt:      tc.CreatedAt,
	}
}

// Synthesize generates and stores the derivable cases of an interface
func (h *CaseHandler) Synthesize(c *gin.Context) {
	var req SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	interfaceID, err := uuid.Parse(req.InterfaceID)
	if err != nil {
		h.BadRequest(c, "Invalid interface ID format")
		return
	}

	report, err := h.caseService.SynthesizeAndStore(c.Request.Context(), interfaceID, getUserID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// Create stores a manually written test case
func (h *CaseHandler) Create(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	interfaceID, err := uuid.Parse(req.InterfaceID)
	if err != nil {
		h.BadRequest(c, "Invalid interface ID format")
		return
	}

	tc, err := h.caseService.CreateManual(c.Request.Context(), caseapp.CreateManualRequest{
		InterfaceID:    interfaceID,
		Name:           req.Name,
		RequestParams:  req.RequestParams,
		RequestHeaders: req.RequestHeaders,
		ExpectedResult: req.ExpectedResult,
		Rule:           testcase.NewRule(req.Checks...),
		CreatorID:      getUserID(c),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toCaseResponse(tc))
}

// GetByID retrieves a test case by its ID
func (h *CaseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	tc, err := h.caseService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCaseResponse(tc))
}

// ListByInterface retrieves the cases stored for an interface
func (h *CaseHandler) ListByInterface(c *gin.Context) {
	interfaceID, err := uuid.Parse(c.Query("interface_id"))
	if err != nil {
		h.BadRequest(c, "interface_id query parameter is required")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cases, total, err := h.caseService.ListByInterface(c.Request.Context(), interfaceID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	out := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		out = append(out, toCaseResponse(&cases[i]))
	}
	h.SuccessWithMeta(c, out, total, req.Page, req.PageSize)
}

// Delete removes a test case
func (h *CaseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid case ID format")
		return
	}

	if err := h.caseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
