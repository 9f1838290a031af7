package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// Repository handles profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Seed creates the initial profile row for a new user.
func (r *Repository) Seed(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) error {
	profile := &models.Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindByUserID loads the profile for a user.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the profile, inserting or updating on the user_id key.
func (r *Repository) Upsert(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return gorm.ErrInvalidData
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

// UpdateAvatarURL stores the public avatar URL for a user.
func (r *Repository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", url).Error
}
