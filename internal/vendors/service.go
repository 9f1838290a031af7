package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nargizhn/primehub-backend/internal/ratings"
	"github.com/nargizhn/primehub-backend/pkg/db/models"
	"github.com/nargizhn/primehub-backend/pkg/enums"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
)

type vendorRepository interface {
	Create(ctx context.Context, dto CreateVendorDTO) (*models.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*models.Vendor, error)
	UpdateRatingTx(tx *gorm.DB, id uuid.UUID, rating, sum float64, count int64) error
}

type ratingRepository interface {
	FindByUserAndVendorTx(tx *gorm.DB, userID, vendorID uuid.UUID) (*models.Rating, error)
	CreateTx(tx *gorm.DB, rating *models.Rating) error
	UpdateValueTx(tx *gorm.DB, id uuid.UUID, value float64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RateInput carries a rating submission: either a precomputed average or the
// raw sub-score triple. A partial triple is rejected before any write.
type RateInput struct {
	Rating  *float64
	Price   *int
	Time    *int
	Quality *int
}

// Service exposes vendor operations.
type Service interface {
	List(ctx context.Context, viewer enums.UserRole) ([]VendorDTO, error)
	GetByID(ctx context.Context, viewer enums.UserRole, id uuid.UUID) (*VendorDTO, error)
	Create(ctx context.Context, viewer enums.UserRole, dto CreateVendorDTO) (*VendorDTO, error)
	Update(ctx context.Context, viewer enums.UserRole, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Rate(ctx context.Context, viewer enums.UserRole, userID, vendorID uuid.UUID, input RateInput) (*VendorDTO, error)
}

type service struct {
	repo       vendorRepository
	ratingRepo ratingRepository
	tx         txRunner
}

// NewService builds a vendor service with the provided repositories.
func NewService(repo vendorRepository, ratingRepo ratingRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if ratingRepo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:       repo,
		ratingRepo: ratingRepo,
		tx:         tx,
	}, nil
}

func (s *service) List(ctx context.Context, viewer enums.UserRole) ([]VendorDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	includePrice := viewer == enums.UserRoleAdmin
	dtos := make([]VendorDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *FromModel(&records[i], includePrice))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, viewer enums.UserRole, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return FromModel(vendor, viewer == enums.UserRoleAdmin), nil
}

func (s *service) Create(ctx context.Context, viewer enums.UserRole, dto CreateVendorDTO) (*VendorDTO, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	vendor, err := s.repo.Create(ctx, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return FromModel(vendor, viewer == enums.UserRoleAdmin), nil
}

func (s *service) Update(ctx context.Context, viewer enums.UserRole, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = name
	}
	if input.Category != nil {
		vendor.Category = *input.Category
	}
	if input.City != nil {
		vendor.City = *input.City
	}
	if input.Representative != nil {
		vendor.Representative = *input.Representative
	}
	if input.Contact != nil {
		vendor.Contact = *input.Contact
	}
	if input.Price != nil {
		cpy := *input.Price
		vendor.Price = &cpy
	}
	if input.Notes != nil {
		vendor.Notes = *input.Notes
	}
	if input.AgreementNumber != nil {
		vendor.AgreementNumber = *input.AgreementNumber
	}
	if input.BankAccount != nil {
		vendor.BankAccount = *input.BankAccount
	}
	if input.Images != nil {
		images := make(pq.StringArray, len(*input.Images))
		copy(images, *input.Images)
		vendor.Images = images
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
	}
	return FromModel(vendor, viewer == enums.UserRoleAdmin), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

// Rate records the submitter's score and folds it into the vendor aggregate.
// A first submission appends to the running sum and count; a re-rate replaces
// the submitter's prior contribution. Rows and aggregate update atomically.
func (s *service) Rate(ctx context.Context, viewer enums.UserRole, userID, vendorID uuid.UUID, input RateInput) (*VendorDTO, error) {
	value, err := resolveRatingValue(input)
	if err != nil {
		return nil, err
	}

	var updated *models.Vendor
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		vendor, err := s.repo.FindByIDTx(tx, vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}

		existing, err := s.ratingRepo.FindByUserAndVendorTx(tx, userID, vendorID)
		switch {
		case err == nil:
			vendor.RatingSum += value - existing.Value
			if err := s.ratingRepo.UpdateValueTx(tx, existing.ID, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rating")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vendor.RatingSum += value
			vendor.RatingCount++
			row := &models.Rating{UserID: userID, VendorID: vendorID, Value: value}
			if err := s.ratingRepo.CreateTx(tx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rating")
			}
		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
		}

		if vendor.RatingCount > 0 {
			vendor.Rating = ratings.Round2(vendor.RatingSum / float64(vendor.RatingCount))
		} else {
			vendor.Rating = 0
		}

		if err := s.repo.UpdateRatingTx(tx, vendorID, vendor.Rating, vendor.RatingSum, vendor.RatingCount); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor rating")
		}

		updated = vendor
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "rate vendor")
	}

	return FromModel(updated, viewer == enums.UserRoleAdmin), nil
}

func resolveRatingValue(input RateInput) (float64, error) {
	hasTriple := input.Price != nil || input.Time != nil || input.Quality != nil
	if hasTriple {
		if input.Price == nil || input.Time == nil || input.Quality == nil {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "price, time, and quality scores are all required")
		}
		triple := ratings.Triple{Price: *input.Price, Time: *input.Time, Quality: *input.Quality}
		avg, err := triple.Average()
		if err != nil {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		return avg, nil
	}

	if input.Rating == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "rating is required")
	}
	value := *input.Rating
	if value < ratings.MinScore || value > ratings.MaxScore {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("rating must be between %d and %d", ratings.MinScore, ratings.MaxScore))
	}
	return ratings.Round2(value), nil
}
