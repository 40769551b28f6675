package repository

import (
	"context"
	"time"

	"github.com/sefazor/campus-events-backend/internal/models"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// CreateWithAccount inserts the organization row and its credential account
// in one transaction.
func (r *OrganizationRepository) CreateWithAccount(ctx context.Context, org *models.Organization, account *models.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		account.UserID = org.ID
		return tx.Create(account).Error
	})
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("name ASC").Find(&orgs).Error
	return orgs, err
}

// Update writes only the named columns of org.
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization, columns ...string) error {
	return r.db.WithContext(ctx).Model(org).Select(columns).Updates(org).Error
}

func (r *OrganizationRepository) SetFirstLogin(ctx context.Context, id string, firstLogin bool) error {
	return r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_first_login": firstLogin,
			"updated_at":     time.Now().UTC(),
		}).Error
}

// Delete removes the organization. Events, sessions and accounts go with it
// through ON DELETE CASCADE.
func (r *OrganizationRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Organization{})
	return result.RowsAffected, result.Error
}

func (r *OrganizationRepository) GetAccount(ctx context.Context, userID, providerID string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND provider_id = ?", userID, providerID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *OrganizationRepository) UpdateAccountPassword(ctx context.Context, accountID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": time.Now().UTC(),
		}).Error
}
