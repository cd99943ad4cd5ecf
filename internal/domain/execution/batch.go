package execution

import (
	"encoding/json"
	"time"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchStatus is the lifecycle status of an execution batch
type BatchStatus string

const (
	BatchRunning   BatchStatus = "RUNNING"
	BatchCompleted BatchStatus = "COMPLETED"
	BatchAborted   BatchStatus = "ABORTED"
)

// Batch represents one run of an ordered list of test cases against an
// environment URL. It is created at dispatch time with status RUNNING
// and mutated exactly once, by the aggregator, when every submitted
// case has produced its result.
type Batch struct {
	shared.BaseEntity
	PlanID    *uuid.UUID  `gorm:"type:uuid;index"`
	EnvURL    string      `gorm:"type:varchar(500);not null"`
	CaseIDs   string      `gorm:"type:text;not null"` // JSON array preserving submission order
	StartTime time.Time   `gorm:"not null"`
	EndTime   *time.Time  ``
	Status    BatchStatus `gorm:"type:varchar(20);not null"`
	Total     int         `gorm:"not null"`
	PassCount int         `gorm:"not null;default:0"`
	FailCount int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "execution_batches"
}

// NewBatch creates a running batch for the given ordered case list
func NewBatch(caseIDs []uuid.UUID, envURL string, planID *uuid.UUID) (*Batch, error) {
	if len(caseIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch requires at least one case")
	}
	if envURL == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch requires an environment URL")
	}
	raw, err := json.Marshal(caseIDs)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Case ID list is not serializable")
	}
	return &Batch{
		BaseEntity: shared.NewBaseEntity(),
		PlanID:     planID,
		EnvURL:     envURL,
		CaseIDs:    string(raw),
		StartTime:  time.Now(),
		Status:     BatchRunning,
		Total:      len(caseIDs),
	}, nil
}

// CaseIDList decodes the ordered case id sequence
func (b *Batch) CaseIDList() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(b.CaseIDs), &ids); err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR", "Stored case ID list is not valid JSON")
	}
	return ids, nil
}

// Complete finalizes the batch counters. Idempotent: recomputing from
// the same result set yields the same terminal state.
func (b *Batch) Complete(passCount, failCount int, endTime time.Time) {
	b.PassCount = passCount
	b.FailCount = failCount
	b.EndTime = &endTime
	b.Status = BatchCompleted
	b.UpdatedAt = endTime
}

// Abort marks the batch as terminated by a store failure. An aborted
// batch keeps whatever counters were recorded; its result set is
// incomplete and must not be presented as a finished run.
func (b *Batch) Abort(endTime time.Time) {
	b.EndTime = &endTime
	b.Status = BatchAborted
	b.UpdatedAt = endTime
}

// IsCompleted reports whether the batch completed normally with a full
// result set
func (b *Batch) IsCompleted() bool {
	return b.Status == BatchCompleted
}

// IsFinished reports whether the batch will make no further progress,
// whether it completed normally or was aborted.
func (b *Batch) IsFinished() bool {
	return b.Status == BatchCompleted || b.Status == BatchAborted
}
