package models

import "time"

// Investment statuses.
const (
	InvestmentStatusActive    = "active"
	InvestmentStatusCompleted = "completed"
	InvestmentStatusCancelled = "cancelled"
)

// InvestmentPlan is reference data joined into investment reads.
type InvestmentPlan struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	ROIPercent   float64   `gorm:"not null" json:"roi_percent"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	MinAmount    float64   `gorm:"not null;default:0" json:"min_amount"`
	MaxAmount    float64   `gorm:"not null;default:0" json:"max_amount"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (InvestmentPlan) TableName() string { return "investment_plans" }

type Investment struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID         uint       `gorm:"not null;index" json:"plan_id"`
	Amount         float64    `gorm:"not null" json:"amount"`
	ExpectedReturn float64    `gorm:"not null;default:0" json:"expected_return"`
	ActualReturn   float64    `gorm:"not null;default:0" json:"actual_return"`
	Status         string     `gorm:"not null;default:'active'" json:"status"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Investment) TableName() string { return "investments" }

// InvestmentWithPlan is the flattened read model: an investment enriched with
// its plan's metadata, regardless of whether the backend joined natively or
// fetched and merged.
type InvestmentWithPlan struct {
	Investment       `gorm:"embedded"`
	PlanName         string  `json:"plan_name"`
	PlanROIPercent   float64 `json:"plan_roi_percent"`
	PlanDurationDays int     `json:"plan_duration_days"`
}
