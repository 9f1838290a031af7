package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorAttachment records the single file attached to a vendor. Replacing an
// attachment deletes the previous storage object before the row is updated.
type VendorAttachment struct {
	VendorID    uuid.UUID `gorm:"column:vendor_id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	URL         string    `gorm:"column:url;not null"`
	ObjectPath  string    `gorm:"column:object_path;not null"`
	SizeBytes   int64     `gorm:"column:size_bytes;not null;default:0"`
	ContentType string    `gorm:"column:content_type"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
