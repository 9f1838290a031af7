package ratings

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// Repository handles per-user rating persistence. All mutations run inside the
// caller's transaction so the vendor aggregate stays consistent with the rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserAndVendorTx loads the submitter's existing rating for a vendor.
func (r *Repository) FindByUserAndVendorTx(tx *gorm.DB, userID, vendorID uuid.UUID) (*models.Rating, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rating models.Rating
	if err := tx.Where("user_id = ? AND vendor_id = ?", userID, vendorID).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// CreateTx inserts a new rating row.
func (r *Repository) CreateTx(tx *gorm.DB, rating *models.Rating) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(rating).Error
}

// UpdateValueTx replaces the stored value of an existing rating row.
func (r *Repository) UpdateValueTx(tx *gorm.DB, id uuid.UUID, value float64) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Model(&models.Rating{}).Where("id = ?", id).Update("value", value).Error
}

// CountByVendor returns how many users have rated the vendor.
func (r *Repository) CountByVendor(tx *gorm.DB, vendorID uuid.UUID) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	var count int64
	if err := tx.Model(&models.Rating{}).Where("vendor_id = ?", vendorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
