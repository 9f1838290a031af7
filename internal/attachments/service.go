package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
	"github.com/nargizhn/primehub-backend/pkg/storage/gcs"
)

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type attachmentRepository interface {
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*models.VendorAttachment, error)
	Upsert(ctx context.Context, attachment *models.VendorAttachment) error
	Delete(ctx context.Context, vendorID uuid.UUID) error
}

type vendorFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type objectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, size int64, body io.Reader) (*gcs.UploadResult, error)
	Delete(ctx context.Context, objectPath string) error
}

// AttachmentDTO exposes the stored attachment metadata.
type AttachmentDTO struct {
	VendorID    uuid.UUID `json:"vendor_id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Upload describes an incoming attachment file.
type Upload struct {
	Name        string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Service manages the single file attached to each vendor.
type Service interface {
	Get(ctx context.Context, vendorID uuid.UUID) (*AttachmentDTO, error)
	Replace(ctx context.Context, vendorID uuid.UUID, upload Upload) (*AttachmentDTO, error)
	Remove(ctx context.Context, vendorID uuid.UUID) error
}

type service struct {
	repo    attachmentRepository
	vendors vendorFinder
	storage objectStore
}

// NewService builds an attachment service. The object store may be nil when
// file storage is not configured; uploads then fail with a dependency error.
func NewService(repo attachmentRepository, vendors vendorFinder, storage objectStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attachment repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, vendors: vendors, storage: storage}, nil
}

func (s *service) Get(ctx context.Context, vendorID uuid.UUID) (*AttachmentDTO, error) {
	attachment, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attachment")
	}
	return fromModel(attachment), nil
}

// Replace uploads the new file and swaps the vendor's attachment record. The
// previous storage object is deleted before the new one is recorded so a
// vendor never accumulates orphaned files.
func (s *service) Replace(ctx context.Context, vendorID uuid.UUID, upload Upload) (*AttachmentDTO, error) {
	if s.storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "file storage is not configured")
	}
	name := sanitizeName(upload.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attachment name is required")
	}
	if upload.Body == nil || upload.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attachment file is required")
	}

	if _, err := s.vendors.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	previous, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attachment")
	}
	if previous != nil {
		if err := s.storage.Delete(ctx, previous.ObjectPath); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete previous attachment")
		}
	}

	objectPath := fmt.Sprintf("vendors/%s/attachments/%d_%s", vendorID, time.Now().UnixMilli(), name)
	result, err := s.storage.Upload(ctx, objectPath, upload.ContentType, upload.SizeBytes, upload.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload attachment")
	}

	attachment := &models.VendorAttachment{
		VendorID:    vendorID,
		Name:        name,
		URL:         result.PublicURL,
		ObjectPath:  result.ObjectPath,
		SizeBytes:   upload.SizeBytes,
		ContentType: upload.ContentType,
	}
	if err := s.repo.Upsert(ctx, attachment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save attachment")
	}

	return fromModel(attachment), nil
}

// Remove deletes the stored object and the attachment record.
func (s *service) Remove(ctx context.Context, vendorID uuid.UUID) error {
	attachment, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attachment")
	}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, attachment.ObjectPath); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attachment object")
		}
	}

	if err := s.repo.Delete(ctx, vendorID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete attachment")
	}
	return nil
}

func fromModel(m *models.VendorAttachment) *AttachmentDTO {
	if m == nil {
		return nil
	}
	return &AttachmentDTO{
		VendorID:    m.VendorID,
		Name:        m.Name,
		URL:         m.URL,
		SizeBytes:   m.SizeBytes,
		ContentType: m.ContentType,
		UpdatedAt:   m.UpdatedAt,
	}
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeNameRe.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}
