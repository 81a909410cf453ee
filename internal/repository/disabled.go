package repository

import "github.com/Eustersshikoli/investhub-backend/internal/models"

// Disabled returns a Repository whose every operation fails immediately with
// ErrNotConfigured, carrying the configuration error recorded at startup. It
// performs no I/O, so a deployment with only one backend configured still
// starts cleanly.
func Disabled(reason error) Repository {
	return &disabledRepository{reason: reason}
}

type disabledRepository struct {
	reason error
}

func (d *disabledRepository) fail(op string) error {
	return WrapError(ErrNotConfigured, op, d.reason)
}

func (d *disabledRepository) CreateProfile(*models.UserProfile) (*models.UserProfile, error) {
	return nil, d.fail("repository.CreateProfile")
}

func (d *disabledRepository) GetProfile(string) (*models.UserProfile, error) {
	return nil, d.fail("repository.GetProfile")
}

func (d *disabledRepository) GetProfileByUsername(string) (*models.UserProfile, error) {
	return nil, d.fail("repository.GetProfileByUsername")
}

// GetProfileByEmail keeps its fail-open contract even when the backend is
// disabled: absence of a backend reads as absence of the profile.
func (d *disabledRepository) GetProfileByEmail(string) (*models.UserProfile, error) {
	return nil, nil
}

func (d *disabledRepository) UpdateProfile(string, models.ProfileUpdate) (*models.UserProfile, error) {
	return nil, d.fail("repository.UpdateProfile")
}

func (d *disabledRepository) CreateBalance(string, float64, string) (*models.UserBalance, error) {
	return nil, d.fail("repository.CreateBalance")
}

func (d *disabledRepository) GetBalance(string, string) (*models.UserBalance, error) {
	return nil, d.fail("repository.GetBalance")
}

func (d *disabledRepository) AdjustBalance(string, float64, string) (*models.UserBalance, error) {
	return nil, d.fail("repository.AdjustBalance")
}

func (d *disabledRepository) CreateTransaction(*models.Transaction) (*models.Transaction, error) {
	return nil, d.fail("repository.CreateTransaction")
}

func (d *disabledRepository) ListTransactions(string, int) ([]models.Transaction, error) {
	return nil, d.fail("repository.ListTransactions")
}

func (d *disabledRepository) UpdateTransactionStatus(uint, string) error {
	return d.fail("repository.UpdateTransactionStatus")
}

func (d *disabledRepository) CreateInvestment(*models.Investment) (*models.Investment, error) {
	return nil, d.fail("repository.CreateInvestment")
}

func (d *disabledRepository) ListInvestments(string) ([]models.InvestmentWithPlan, error) {
	return nil, d.fail("repository.ListInvestments")
}

func (d *disabledRepository) GetPlan(uint) (*models.InvestmentPlan, error) {
	return nil, d.fail("repository.GetPlan")
}

func (d *disabledRepository) ListPlans() ([]models.InvestmentPlan, error) {
	return nil, d.fail("repository.ListPlans")
}

func (d *disabledRepository) CreateAuthUser(*models.AuthUser) (*models.AuthUser, error) {
	return nil, d.fail("repository.CreateAuthUser")
}

func (d *disabledRepository) GetAuthUserByEmail(string) (*models.AuthUser, error) {
	return nil, d.fail("repository.GetAuthUserByEmail")
}

func (d *disabledRepository) UpdateAuthUserPassword(string, string) error {
	return d.fail("repository.UpdateAuthUserPassword")
}

func (d *disabledRepository) TouchLastSignIn(string) error {
	return d.fail("repository.TouchLastSignIn")
}

func (d *disabledRepository) UpsertAdminUser(*models.AdminUser, string) (*models.AdminUser, error) {
	return nil, d.fail("repository.UpsertAdminUser")
}

func (d *disabledRepository) GetAdminByEmail(string) (*models.AdminUser, *models.AuthUser, error) {
	return nil, nil, d.fail("repository.GetAdminByEmail")
}
