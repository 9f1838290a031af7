package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
	"github.com/nargizhn/primehub-backend/pkg/storage/gcs"
)

const avatarObjectName = "avatar.jpg"

type profileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type objectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, size int64, body io.Reader) (*gcs.UploadResult, error)
}

// AvatarUpload describes the incoming avatar file.
type AvatarUpload struct {
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Service exposes profile operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, upload AvatarUpload) (*ProfileDTO, error)
}

type service struct {
	repo    profileRepository
	users   userFinder
	storage objectStore
}

// NewService builds a profile service. The object store may be nil when file
// storage is not configured; avatar uploads then fail with a dependency error.
func NewService(repo profileRepository, users userFinder, storage objectStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, users: users, storage: storage}, nil
}

// Get returns the stored profile, falling back to the user record when no
// profile row exists yet.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return FromModel(profile), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(&models.Profile{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}), nil
}

// Update merges the incoming fields into the stored profile. Empty strings are
// treated as absent so a partial edit never erases existing values.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
		}
		user, userErr := s.users.FindByID(ctx, userID)
		if userErr != nil {
			if errors.Is(userErr, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, userErr, "load user")
		}
		profile = &models.Profile{
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		}
	}

	if input.FirstName != nil {
		if name := strings.TrimSpace(*input.FirstName); name != "" {
			profile.FirstName = name
		}
	}
	if input.LastName != nil {
		if name := strings.TrimSpace(*input.LastName); name != "" {
			profile.LastName = name
		}
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}
	return FromModel(profile), nil
}

// UploadAvatar stores the image at a stable per-user path and records its
// public URL. Re-uploads overwrite the same object.
func (s *service) UploadAvatar(ctx context.Context, userID uuid.UUID, upload AvatarUpload) (*ProfileDTO, error) {
	if s.storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "file storage is not configured")
	}
	if upload.Body == nil || upload.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "avatar file is required")
	}

	objectPath := fmt.Sprintf("users/%s/%s", userID, avatarObjectName)
	result, err := s.storage.Upload(ctx, objectPath, upload.ContentType, upload.SizeBytes, upload.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload avatar")
	}

	if err := s.repo.UpdateAvatarURL(ctx, userID, result.PublicURL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save avatar url")
	}

	return s.Get(ctx, userID)
}
