package postgres

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

// CreateBalance upserts the (user, currency) row, accumulating into an
// existing balance rather than overwriting it.
func (r *Repository) CreateBalance(userID string, amount float64, currency string) (*models.UserBalance, error) {
	r.log.WithFields(logrus.Fields{
		"op":       "CreateBalance",
		"user":     logger.RedactID(userID),
		"currency": currency,
	}).Info("upserting balance")

	row := &models.UserBalance{UserID: userID, Currency: currency, Balance: amount}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("user_balances.balance + EXCLUDED.balance"),
			"updated_at": time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, r.wrap("postgres.CreateBalance", err)
	}

	return r.mustGetBalance("postgres.CreateBalance", userID, currency)
}

func (r *Repository) GetBalance(userID, currency string) (*models.UserBalance, error) {
	var balance models.UserBalance
	err := r.db.Where("user_id = ? AND currency = ?", userID, currency).First(&balance).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.wrap("postgres.GetBalance", err)
	}
	return &balance, nil
}

// AdjustBalance applies the delta as a single atomic statement so concurrent
// adjustments never lose an update.
func (r *Repository) AdjustBalance(userID string, delta float64, currency string) (*models.UserBalance, error) {
	r.log.WithFields(logrus.Fields{
		"op":       "AdjustBalance",
		"user":     logger.RedactID(userID),
		"currency": currency,
	}).Info("adjusting balance")

	res := r.db.Model(&models.UserBalance{}).
		Where("user_id = ? AND currency = ?", userID, currency).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, r.wrap("postgres.AdjustBalance", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.WrapError(repository.ErrNotFound, "postgres.AdjustBalance", nil)
	}

	return r.mustGetBalance("postgres.AdjustBalance", userID, currency)
}

func (r *Repository) mustGetBalance(op, userID, currency string) (*models.UserBalance, error) {
	balance, err := r.GetBalance(userID, currency)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, repository.WrapError(repository.ErrNotFound, op, nil)
	}
	return balance, nil
}
