package models

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single user's score for a vendor. One row per (user, vendor);
// re-rating updates Value in place while the vendor keeps the running sum.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_ratings_user_vendor"`
	VendorID  uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_ratings_user_vendor"`
	Value     float64   `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
