package baas

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

const tableTransactions = "transactions"

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

	var rows []models.Transaction
	err := r.client.do("baas.CreateTransaction", http.MethodPost, tableTransactions, nil, tx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return tx, nil
	}
	return &rows[0], nil
}

func (r *Repository) ListTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	query := url.Values{
		"user_id": {eq(userID)},
		"order":   {"created_at.desc"},
		"limit":   {strconv.Itoa(limit)},
	}
	var rows []models.Transaction
	err := r.client.do("baas.ListTransactions", http.MethodGet, tableTransactions, query, nil, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateTransactionStatus filters on the pending status so the transition can
// only happen once; an empty update result distinguishes a missing row from
// an already-transitioned one.
func (r *Repository) UpdateTransactionStatus(id uint, status string) error {
	if status != models.TransactionStatusCompleted && status != models.TransactionStatusFailed {
		return repository.WrapError(repository.ErrConstraintViolation, "baas.UpdateTransactionStatus", nil)
	}

	query := url.Values{
		"id":     {eq(id)},
		"status": {eq(models.TransactionStatusPending)},
	}
	body := map[string]interface{}{"status": status}
	var rows []models.Transaction
	err := r.client.do("baas.UpdateTransactionStatus", http.MethodPatch, tableTransactions, query, body, &rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		var existing []models.Transaction
		err := r.client.do("baas.UpdateTransactionStatus", http.MethodGet, tableTransactions,
			url.Values{"id": {eq(id)}}, nil, &existing)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return repository.WrapError(repository.ErrNotFound, "baas.UpdateTransactionStatus", nil)
		}
		return repository.WrapError(repository.ErrConstraintViolation, "baas.UpdateTransactionStatus", nil)
	}
	return nil
}
