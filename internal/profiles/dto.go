package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// ProfileDTO exposes the per-user profile document.
type ProfileDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileInput captures the editable profile fields. Nil or empty values
// never clobber stored data.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
}

// FromModel maps the persisted profile into a DTO.
func FromModel(m *models.Profile) *ProfileDTO {
	if m == nil {
		return nil
	}
	dto := &ProfileDTO{
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.AvatarURL != nil {
		cpy := *m.AvatarURL
		dto.AvatarURL = &cpy
	}
	return dto
}
