// Package repository defines the single CRUD contract for profiles, balances,
// transactions and investments, implemented once per storage backend. The
// Postgres implementation speaks parameterized SQL through gorm; the BaaS
// implementation speaks the managed platform's REST data and identity API.
// Both normalize their backend's error signaling into the taxonomy in
// errors.go so callers never branch on which backend is live.
package repository

import "github.com/Eustersshikoli/investhub-backend/internal/models"

// Repository is the cross-backend data-access contract.
//
// "Row not found" semantics: plain lookups (GetProfile, GetProfileByUsername,
// GetAuthUserByEmail, GetBalance) return (nil, nil) when the record is absent,
// regardless of whether the backend signals absence as an empty result set or
// as a distinct error code. Only operations that require existence return
// ErrNotFound.
type Repository interface {
	// Profiles.
	CreateProfile(profile *models.UserProfile) (*models.UserProfile, error)
	GetProfile(id string) (*models.UserProfile, error)
	GetProfileByUsername(username string) (*models.UserProfile, error)
	// GetProfileByEmail never fails: on any backend error it returns
	// (nil, nil) so uniqueness validation can proceed instead of blocking
	// sign-up on a transient read failure. Deliberate fail-open.
	GetProfileByEmail(email string) (*models.UserProfile, error)
	// UpdateProfile writes only the fields supplied in update.
	UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error)

	// Balances. CreateBalance is an accumulating upsert: an existing
	// (user, currency) row has amount added to it, never replaced.
	CreateBalance(userID string, amount float64, currency string) (*models.UserBalance, error)
	GetBalance(userID, currency string) (*models.UserBalance, error)
	// AdjustBalance applies a signed delta and fails with ErrNotFound when
	// no row exists. Atomic on Postgres; read-then-write on the managed
	// backend, which tolerates a narrow lost-update window.
	AdjustBalance(userID string, delta float64, currency string) (*models.UserBalance, error)

	// Ledger. Transactions are append-only; status may transition once
	// from pending to completed or failed.
	CreateTransaction(tx *models.Transaction) (*models.Transaction, error)
	ListTransactions(userID string, limit int) ([]models.Transaction, error)
	UpdateTransactionStatus(id uint, status string) error

	// Investments. List results are flattened with plan metadata whether
	// the backend joins natively or fetches and merges.
	CreateInvestment(inv *models.Investment) (*models.Investment, error)
	ListInvestments(userID string) ([]models.InvestmentWithPlan, error)
	GetPlan(id uint) (*models.InvestmentPlan, error)
	ListPlans() ([]models.InvestmentPlan, error)

	// Identity. These tables exist only under the Postgres backend; the
	// managed backend owns identity itself and returns ErrNotConfigured.
	CreateAuthUser(user *models.AuthUser) (*models.AuthUser, error)
	GetAuthUserByEmail(email string) (*models.AuthUser, error)
	UpdateAuthUserPassword(id, passwordHash string) error
	TouchLastSignIn(id string) error
	// UpsertAdminUser rotates credentials idempotently: identity hash and
	// admin role are updated together for an existing email.
	UpsertAdminUser(admin *models.AdminUser, passwordHash string) (*models.AdminUser, error)
	GetAdminByEmail(email string) (*models.AdminUser, *models.AuthUser, error)
}
