package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/nargizhn/primehub-backend/internal/ratings"
	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// VendorDTO exposes vendor data in API responses. Price is withheld for
// non-admin viewers.
type VendorDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	City            string           `json:"city"`
	Representative  string           `json:"representative"`
	Contact         string           `json:"contact"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Notes           string           `json:"notes"`
	AgreementNumber string           `json:"agreement_number"`
	BankAccount     string           `json:"bank_account"`
	Rating          float64          `json:"rating"`
	RatingCount     int64            `json:"rating_count"`
	RatingDisplay   string           `json:"rating_display"`
	Images          []string         `json:"images"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// CreateVendorDTO holds creation-time data for a new vendor.
type CreateVendorDTO struct {
	Name            string
	Category        string
	City            string
	Representative  string
	Contact         string
	Price           *decimal.Decimal
	Notes           string
	AgreementNumber string
	BankAccount     string
	Images          []string
}

// UpdateVendorInput captures the mutable vendor fields. Nil means "leave as is".
type UpdateVendorInput struct {
	Name            *string
	Category        *string
	City            *string
	Representative  *string
	Contact         *string
	Price           *decimal.Decimal
	Notes           *string
	AgreementNumber *string
	BankAccount     *string
	Images          *[]string
}

// FromModel maps the persisted vendor into a DTO.
func FromModel(m *models.Vendor, includePrice bool) *VendorDTO {
	if m == nil {
		return nil
	}

	dto := &VendorDTO{
		ID:              m.ID,
		Name:            m.Name,
		Category:        m.Category,
		City:            m.City,
		Representative:  m.Representative,
		Contact:         m.Contact,
		Notes:           m.Notes,
		AgreementNumber: m.AgreementNumber,
		BankAccount:     m.BankAccount,
		Rating:          m.Rating,
		RatingCount:     m.RatingCount,
		RatingDisplay:   ratings.FormatRating(m.Rating, m.RatingCount),
		Images:          []string(m.Images),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if includePrice && m.Price != nil {
		cpy := *m.Price
		dto.Price = &cpy
	}

	return dto
}

// ToModel prepares the GORM model from creation data. New vendors start unrated.
func (c CreateVendorDTO) ToModel() *models.Vendor {
	model := &models.Vendor{
		Name:            c.Name,
		Category:        c.Category,
		City:            c.City,
		Representative:  c.Representative,
		Contact:         c.Contact,
		Notes:           c.Notes,
		AgreementNumber: c.AgreementNumber,
		BankAccount:     c.BankAccount,
		Rating:          0,
		RatingSum:       0,
		RatingCount:     0,
		Images:          pq.StringArray{},
	}

	if c.Price != nil {
		cpy := *c.Price
		model.Price = &cpy
	}
	if c.Images != nil {
		model.Images = make(pq.StringArray, len(c.Images))
		copy(model.Images, c.Images)
	}

	return model
}
