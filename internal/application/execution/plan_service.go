package execution

import (
	"context"
	"time"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePlanRequest carries test plan creation input
type CreatePlanRequest struct {
	ProjectID   uuid.UUID `json:"project_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	EnvURL      string    `json:"env_url" binding:"required"`
	ExecuteType string    `json:"execute_type" binding:"required"`
	CronSpec    string    `json:"cron_spec"`
	CaseIDs     []string  `json:"case_ids"`
}

// PlanResponse is the API view of a test plan
type PlanResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	EnvURL      string    `json:"env_url"`
	ExecuteType string    `json:"execute_type"`
	CronSpec    string    `json:"cron_spec,omitempty"`
	CaseIDs     []string  `json:"case_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// BatchResponse is the API view of an execution batch
type BatchResponse struct {
	ID        string     `json:"id"`
	PlanID    *string    `json:"plan_id,omitempty"`
	EnvURL    string     `json:"env_url"`
	Status    string     `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Total     int        `json:"total"`
	PassCount int        `json:"pass_count"`
	FailCount int        `json:"fail_count"`
}

// ResultResponse is the API view of one case result within a batch
type ResultResponse struct {
	ID       string    `json:"id"`
	CaseID   string    `json:"case_id"`
	Status   string    `json:"status"`
	ExecTime time.Time `json:"exec_time"`
	Duration int64     `json:"duration_ms"`
	Response string    `json:"response,omitempty"`
	ErrorMsg string    `json:"error_msg,omitempty"`
}

// BatchReport pairs a batch with its per-case results
type BatchReport struct {
	Batch   BatchResponse    `json:"batch"`
	Results []ResultResponse `json:"results"`
}

// PlanService manages test plans and exposes batch execution and
// reporting on top of the dispatcher.
type PlanService struct {
	planRepo    execution.PlanRepository
	batchRepo   execution.BatchRepository
	resultRepo  execution.ResultRepository
	projectRepo spec.ProjectRepository
	dispatcher  *Dispatcher
	logger      *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(
	planRepo execution.PlanRepository,
	batchRepo execution.BatchRepository,
	resultRepo execution.ResultRepository,
	projectRepo spec.ProjectRepository,
	dispatcher *Dispatcher,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		planRepo:    planRepo,
		batchRepo:   batchRepo,
		resultRepo:  resultRepo,
		projectRepo: projectRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// CreatePlan creates a plan and its ordered case list
func (s *PlanService) CreatePlan(ctx context.Context, req CreatePlanRequest, creatorID uuid.UUID) (*PlanResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	caseIDs, err := parseCaseIDs(req.CaseIDs)
	if err != nil {
		return nil, err
	}

	plan, err := execution.NewTestPlan(req.ProjectID, req.Name, req.EnvURL,
		execution.ExecuteType(req.ExecuteType), req.CronSpec, creatorID)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	if len(caseIDs) > 0 {
		if err := s.planRepo.ReplaceCases(ctx, plan.ID, caseIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Test plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("name", plan.Name),
		zap.Int("cases", len(caseIDs)),
	)
	return s.toPlanResponse(ctx, plan)
}

// GetPlan returns one plan with its ordered case list
func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toPlanResponse(ctx, plan)
}

// ListPlans returns plans matching the filter
func (s *PlanService) ListPlans(ctx context.Context, filter shared.Filter) ([]PlanResponse, int64, error) {
	plans, total, err := s.planRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		resp, err := s.toPlanResponse(ctx, &plans[i])
		if err != nil {
			return nil, 0, err
		}
		responses[i] = *resp
	}
	return responses, total, nil
}

// ReplaceCases swaps a plan's ordered case list
func (s *PlanService) ReplaceCases(ctx context.Context, planID uuid.UUID, rawIDs []string) error {
	if _, err := s.planRepo.FindByID(ctx, planID); err != nil {
		return err
	}
	caseIDs, err := parseCaseIDs(rawIDs)
	if err != nil {
		return err
	}
	return s.planRepo.ReplaceCases(ctx, planID, caseIDs)
}

// DeletePlan removes a plan and its case links
func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.planRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, id)
}

// ExecutePlan dispatches a batch for the plan's ordered case list
func (s *PlanService) ExecutePlan(ctx context.Context, planID uuid.UUID) (uuid.UUID, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return uuid.Nil, err
	}
	caseIDs, err := s.planRepo.FindCaseIDs(ctx, planID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(caseIDs) == 0 {
		return uuid.Nil, shared.NewDomainError("INVALID_STATE", "Plan has no cases to execute")
	}
	return s.dispatcher.RunBatch(ctx, caseIDs, plan.EnvURL, &plan.ID)
}

// ExecuteCases dispatches an ad-hoc batch for an explicit case list
func (s *PlanService) ExecuteCases(ctx context.Context, rawIDs []string, envURL string) (uuid.UUID, error) {
	caseIDs, err := parseCaseIDs(rawIDs)
	if err != nil {
		return uuid.Nil, err
	}
	return s.dispatcher.RunBatch(ctx, caseIDs, envURL, nil)
}

// GetBatch returns one batch's summary
func (s *PlanService) GetBatch(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	resp := toBatchResponse(batch)
	return &resp, nil
}

// ListBatches returns batches matching the filter
func (s *PlanService) ListBatches(ctx context.Context, filter shared.Filter) ([]BatchResponse, int64, error) {
	batches, total, err := s.batchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = toBatchResponse(&batches[i])
	}
	return responses, total, nil
}

// GetBatchReport returns a batch together with its per-case results
func (s *PlanService) GetBatchReport(ctx context.Context, batchID uuid.UUID) (*BatchReport, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	results, err := s.resultRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	report := &BatchReport{
		Batch:   toBatchResponse(batch),
		Results: make([]ResultResponse, len(results)),
	}
	for i, r := range results {
		report.Results[i] = ResultResponse{
			ID:       r.ID.String(),
			CaseID:   r.CaseID.String(),
			Status:   string(r.Status),
			ExecTime: r.ExecTime,
			Duration: r.Duration.Milliseconds(),
			Response: r.Response,
			ErrorMsg: r.ErrorMsg,
		}
	}
	return report, nil
}

func (s *PlanService) toPlanResponse(ctx context.Context, plan *execution.TestPlan) (*PlanResponse, error) {
	caseIDs, err := s.planRepo.FindCaseIDs(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(caseIDs))
	for i, id := range caseIDs {
		ids[i] = id.String()
	}
	return &PlanResponse{
		ID:          plan.ID.String(),
		ProjectID:   plan.ProjectID.String(),
		Name:        plan.Name,
		EnvURL:      plan.EnvURL,
		ExecuteType: string(plan.ExecuteType),
		CronSpec:    plan.CronSpec,
		CaseIDs:     ids,
		CreatedAt:   plan.CreatedAt,
	}, nil
}

func toBatchResponse(batch *execution.Batch) BatchResponse {
	resp := BatchResponse{
		ID:        batch.ID.String(),
		EnvURL:    batch.EnvURL,
		Status:    string(batch.Status),
		StartTime: batch.StartTime,
		EndTime:   batch.EndTime,
		Total:     batch.Total,
		PassCount: batch.PassCount,
		FailCount: batch.FailCount,
	}
	if batch.PlanID != nil {
		planID := batch.PlanID.String()
		resp.PlanID = &planID
	}
	return resp
}

func parseCaseIDs(rawIDs []string) ([]uuid.UUID, error) {
	caseIDs := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Case ID is not a valid UUID: "+raw)
		}
		caseIDs = append(caseIDs, id)
	}
	return caseIDs, nil
}
