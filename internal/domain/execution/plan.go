package execution

import (
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExecuteType distinguishes manually triggered plans from cron plans
type ExecuteType string

const (
	ExecuteManual ExecuteType = "manual"
	ExecuteCron   ExecuteType = "cron"
)

// TestPlan is a named, ordered selection of test cases bound to one
// environment URL. Cron plans carry a daily "HH:MM" schedule consumed
// by the plan trigger.
type TestPlan struct {
	shared.BaseEntity
	ProjectID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name        string      `gorm:"type:varchar(100);not null"`
	EnvURL      string      `gorm:"type:varchar(500);not null"`
	ExecuteType ExecuteType `gorm:"type:varchar(10);not null"`
	CronSpec    string      `gorm:"type:varchar(10)"` // "HH:MM", daily
	CreatorID   uuid.UUID   `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (TestPlan) TableName() string {
	return "test_plans"
}

// PlanCase links a plan to one case with an explicit execution order
type PlanCase struct {
	shared.BaseEntity
	PlanID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CaseID    uuid.UUID `gorm:"type:uuid;not null"`
	SortOrder int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlanCase) TableName() string {
	return "plan_cases"
}

// NewTestPlan creates a new test plan
func NewTestPlan(projectID uuid.UUID, name, envURL string, executeType ExecuteType, cronSpec string, creatorID uuid.UUID) (*TestPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if strings.TrimSpace(envURL) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Plan requires an environment URL")
	}
	if executeType != ExecuteManual && executeType != ExecuteCron {
		return nil, shared.NewDomainError("INVALID_INPUT", "Execute type must be manual or cron")
	}
	if executeType == ExecuteCron && !validCronSpec(cronSpec) {
		return nil, shared.NewDomainError("INVALID_CRON", "Cron plans require a schedule in HH:MM form")
	}
	return &TestPlan{
		BaseEntity:  shared.NewBaseEntity(),
		ProjectID:   projectID,
		Name:        name,
		EnvURL:      strings.TrimSpace(envURL),
		ExecuteType: executeType,
		CronSpec:    cronSpec,
		CreatorID:   creatorID,
	}, nil
}

func validCronSpec(spec string) bool {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return false
	}
	hour, minute := parts[0], parts[1]
	if len(hour) != 2 || len(minute) != 2 {
		return false
	}
	h := (int(hour[0]-'0') * 10) + int(hour[1]-'0')
	m := (int(minute[0]-'0') * 10) + int(minute[1]-'0')
	for _, c := range spec {
		if c != ':' && (c < '0' || c > '9') {
			return false
		}
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}
