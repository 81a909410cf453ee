package models

import "time"

// Transaction kinds
const (
	TransactionTypeDeposit            = "deposit"
	TransactionTypeWithdrawal         = "withdrawal"
	TransactionTypeInvestment         = "investment"
	TransactionTypeReturn             = "return"
	TransactionTypeReferralCommission = "referral_commission"
)

// Transaction statuses. A transaction starts pending and may transition once.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is an append-only ledger entry. Rows are immutable apart from
// the single pending -> completed|failed status transition.
type Transaction struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string    `gorm:"not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Currency    string    `gorm:"not null;default:'USD'" json:"currency"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	Reference   string    `json:"reference,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }

// ValidTransactionType reports whether t is one of the ledger kinds.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeInvestment, TransactionTypeReturn,
		TransactionTypeReferralCommission:
		return true
	}
	return false
}
