package postgres

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

func (r *Repository) CreateInvestment(inv *models.Investment) (*models.Investment, error) {
	plan, err := r.GetPlan(inv.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, repository.WrapError(repository.ErrNotFound, "postgres.CreateInvestment", nil)
	}

	if inv.Status == "" {
		inv.Status = models.InvestmentStatusActive
	}
	if inv.StartDate.IsZero() {
		inv.StartDate = time.Now()
	}
	if inv.ExpectedReturn == 0 {
		inv.ExpectedReturn = inv.Amount * plan.ROIPercent / 100
	}
	if inv.EndDate == nil {
		end := inv.StartDate.AddDate(0, 0, plan.DurationDays)
		inv.EndDate = &end
	}

	r.log.WithFields(logrus.Fields{
		"op":   "CreateInvestment",
		"user": logger.RedactID(inv.UserID),
		"plan": plan.ID,
	}).Info("creating investment")

	if err := r.db.Create(inv).Error; err != nil {
		return nil, r.wrap("postgres.CreateInvestment", err)
	}
	return inv, nil
}

// ListInvestments joins plans natively and returns the flattened read model.
func (r *Repository) ListInvestments(userID string) ([]models.InvestmentWithPlan, error) {
	var rows []models.InvestmentWithPlan
	err := r.db.Table("investments").
		Select("investments.*, investment_plans.name AS plan_name, " +
			"investment_plans.roi_percent AS plan_roi_percent, " +
			"investment_plans.duration_days AS plan_duration_days").
		Joins("JOIN investment_plans ON investment_plans.id = investments.plan_id").
		Where("investments.user_id = ?", userID).
		Order("investments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.wrap("postgres.ListInvestments", err)
	}
	return rows, nil
}

func (r *Repository) GetPlan(id uint) (*models.InvestmentPlan, error) {
	var plan models.InvestmentPlan
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.wrap("postgres.GetPlan", err)
	}
	return &plan, nil
}

func (r *Repository) ListPlans() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := r.db.Where("active = ?", true).Order("id").Find(&plans).Error
	if err != nil {
		return nil, r.wrap("postgres.ListPlans", err)
	}
	return plans, nil
}
