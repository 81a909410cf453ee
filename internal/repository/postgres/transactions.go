package postgres

import (
	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

const defaultTransactionLimit = 50

func (r *Repository) CreateTransaction(tx *models.Transaction) (*models.Transaction, error) {
	if tx.Status == "" {
		tx.Status = models.TransactionStatusPending
	}

	r.log.WithFields(logrus.Fields{
		"op":   "CreateTransaction",
		"user": logger.RedactID(tx.UserID),
		"type": tx.Type,
	}).Info("appending ledger entry")

	if err := r.db.Create(tx).Error; err != nil {
		return nil, r.wrap("postgres.CreateTransaction", err)
	}
	return tx, nil
}

func (r *Repository) ListTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	var txs []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, r.wrap("postgres.ListTransactions", err)
	}
	return txs, nil
}

// UpdateTransactionStatus performs the single allowed pending -> terminal
// transition. A row that already left pending fails with a constraint
// violation, never a silent second transition.
func (r *Repository) UpdateTransactionStatus(id uint, status string) error {
	if status != models.TransactionStatusCompleted && status != models.TransactionStatusFailed {
		return repository.WrapError(repository.ErrConstraintViolation, "postgres.UpdateTransactionStatus", nil)
	}

	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Update("status", status)
	if res.Error != nil {
		return r.wrap("postgres.UpdateTransactionStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return r.wrap("postgres.UpdateTransactionStatus", err)
		}
		if count == 0 {
			return repository.WrapError(repository.ErrNotFound, "postgres.UpdateTransactionStatus", nil)
		}
		return repository.WrapError(repository.ErrConstraintViolation, "postgres.UpdateTransactionStatus", nil)
	}
	return nil
}
