package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Vendor is a supplier tracked by the platform. Rating is the running average
// maintained from RatingSum/RatingCount; a rating of 0 with a count of 0 means
// the vendor has never been rated, not that it was rated zero.
type Vendor struct {
	ID              uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string           `gorm:"column:name;not null"`
	Category        string           `gorm:"column:category"`
	City            string           `gorm:"column:city"`
	Representative  string           `gorm:"column:representative"`
	Contact         string           `gorm:"column:contact"`
	Price           *decimal.Decimal `gorm:"column:price;type:numeric(19,2)"`
	Notes           string           `gorm:"column:notes;type:text"`
	AgreementNumber string           `gorm:"column:agreement_number"`
	BankAccount     string           `gorm:"column:bank_account"`
	Rating          float64          `gorm:"column:rating;not null;default:0"`
	RatingSum       float64          `gorm:"column:rating_sum;not null;default:0"`
	RatingCount     int64            `gorm:"column:rating_count;not null;default:0"`
	Images          pq.StringArray   `gorm:"column:images;type:text[]"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
