package models

import "time"

// UserBalance holds exactly one row per (user, currency) pair. The balance is
// only ever moved by additive adjustment, never overwritten.
type UserBalance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_balance_user_currency" json:"user_id"`
	Currency  string    `gorm:"not null;default:'USD';uniqueIndex:idx_balance_user_currency" json:"currency"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserBalance) TableName() string { return "user_balances" }
