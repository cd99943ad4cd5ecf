package execution

import (
	"time"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ResultStatus distinguishes assertion verdicts from infrastructure
// failures: FAIL means the system under test failed the assertion,
// ERROR means the test run itself failed (transport error, malformed
// stored case, timeout).
type ResultStatus string

const (
	ResultPass  ResultStatus = "PASS"
	ResultFail  ResultStatus = "FAIL"
	ResultError ResultStatus = "ERROR"
)

// maxStoredResponse bounds the raw response body persisted per result
const maxStoredResponse = 8192

// TestResult is the outcome of one case in one batch. Exactly one
// result exists per (case, batch); results are never mutated after
// creation.
type TestResult struct {
	shared.BaseEntity
	BatchID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	CaseID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	ExecTime time.Time     `gorm:"not null"`
	Status   ResultStatus  `gorm:"type:varchar(10);not null"`
	Response string        `gorm:"type:text"`
	Duration time.Duration `gorm:"not null;default:0"`
	ErrorMsg string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TestResult) TableName() string {
	return "test_results"
}

// NewPassResult records a passed case
func NewPassResult(batchID, caseID uuid.UUID, response string, duration time.Duration) *TestResult {
	return newResult(batchID, caseID, ResultPass, response, duration, "")
}

// NewFailResult records an assertion failure
func NewFailResult(batchID, caseID uuid.UUID, response string, duration time.Duration, mismatch string) *TestResult {
	return newResult(batchID, caseID, ResultFail, response, duration, mismatch)
}

// NewErrorResult records an infrastructure failure for one case
func NewErrorResult(batchID, caseID uuid.UUID, duration time.Duration, errMsg string) *TestResult {
	return newResult(batchID, caseID, ResultError, "", duration, errMsg)
}

func newResult(batchID, caseID uuid.UUID, status ResultStatus, response string, duration time.Duration, errMsg string) *TestResult {
	if len(response) > maxStoredResponse {
		response = response[:maxStoredResponse]
	}
	return &TestResult{
		BaseEntity: shared.NewBaseEntity(),
		BatchID:    batchID,
		CaseID:     caseID,
		ExecTime:   time.Now(),
		Status:     status,
		Response:   response,
		Duration:   duration,
		ErrorMsg:   errMsg,
	}
}

// Passed reports whether the result counts toward the batch pass total
func (r *TestResult) Passed() bool {
	return r.Status == ResultPass
}
