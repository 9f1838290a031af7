package attachments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// Repository handles vendor attachment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to attachment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByVendorID loads the attachment record for a vendor.
func (r *Repository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*models.VendorAttachment, error) {
	var attachment models.VendorAttachment
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Upsert writes the attachment record, replacing any previous one for the vendor.
func (r *Repository) Upsert(ctx context.Context, attachment *models.VendorAttachment) error {
	if attachment == nil {
		return gorm.ErrInvalidData
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			UpdateAll: true,
		}).
		Create(attachment).Error
}

// Delete removes the attachment record for a vendor.
func (r *Repository) Delete(ctx context.Context, vendorID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Delete(&models.VendorAttachment{}).Error
}
