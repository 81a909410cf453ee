package baas

import (
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

const (
	tableInvestments = "investments"
	tablePlans       = "investment_plans"
)

func (r *Repository) CreateInvestment(inv *models.Investment) (*models.Investment, error) {
	plan, err := r.GetPlan(inv.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, repository.WrapError(repository.ErrNotFound, "baas.CreateInvestment", nil)
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

	var rows []models.Investment
	err = r.client.do("baas.CreateInvestment", http.MethodPost, tableInvestments, nil, inv, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return inv, nil
	}
	return &rows[0], nil
}

// ListInvestments has no native join on the data API: investments and plans
// are fetched separately and merged here into the same flattened read model
// the Postgres backend produces with SQL.
func (r *Repository) ListInvestments(userID string) ([]models.InvestmentWithPlan, error) {
	query := url.Values{
		"user_id": {eq(userID)},
		"order":   {"created_at.desc"},
	}
	var investments []models.Investment
	err := r.client.do("baas.ListInvestments", http.MethodGet, tableInvestments, query, nil, &investments)
	if err != nil {
		return nil, err
	}
	if len(investments) == 0 {
		return nil, nil
	}

	var plans []models.InvestmentPlan
	err = r.client.do("baas.ListInvestments", http.MethodGet, tablePlans, nil, nil, &plans)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.InvestmentPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}

	rows := make([]models.InvestmentWithPlan, 0, len(investments))
	for _, inv := range investments {
		row := models.InvestmentWithPlan{Investment: inv}
		if p, ok := byID[inv.PlanID]; ok {
			row.PlanName = p.Name
			row.PlanROIPercent = p.ROIPercent
			row.PlanDurationDays = p.DurationDays
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *Repository) GetPlan(id uint) (*models.InvestmentPlan, error) {
	query := url.Values{"id": {eq(id)}}
	var rows []models.InvestmentPlan
	err := r.client.do("baas.GetPlan", http.MethodGet, tablePlans, query, nil, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *Repository) ListPlans() ([]models.InvestmentPlan, error) {
	query := url.Values{
		"active": {eq(true)},
		"order":  {"id.asc"},
	}
	var rows []models.InvestmentPlan
	err := r.client.do("baas.ListPlans", http.MethodGet, tablePlans, query, nil, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
