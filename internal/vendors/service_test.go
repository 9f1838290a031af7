package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
	"github.com/nargizhn/primehub-backend/pkg/enums"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
)

type stubVendorRepo struct {
	vendor  *models.Vendor
	findErr error

	ratingArgs *ratingUpdate
}

type ratingUpdate struct {
	rating float64
	sum    float64
	count  int64
}

func (s *stubVendorRepo) Create(ctx context.Context, dto CreateVendorDTO) (*models.Vendor, error) {
	model := dto.ToModel()
	model.ID = uuid.New()
	return model, nil
}

func (s *stubVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.vendor, nil
}

func (s *stubVendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	if s.vendor == nil {
		return nil, nil
	}
	return []models.Vendor{*s.vendor}, nil
}

func (s *stubVendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	s.vendor = vendor
	return nil
}

func (s *stubVendorRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.vendor == nil || s.vendor.ID != id {
		return 0, nil
	}
	s.vendor = nil
	return 1, nil
}

func (s *stubVendorRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*models.Vendor, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	cpy := *s.vendor
	return &cpy, nil
}

func (s *stubVendorRepo) UpdateRatingTx(tx *gorm.DB, id uuid.UUID, rating, sum float64, count int64) error {
	s.ratingArgs = &ratingUpdate{rating: rating, sum: sum, count: count}
	return nil
}

type stubRatingRepo struct {
	existing *models.Rating

	created *models.Rating
	updated *float64
}

func (s *stubRatingRepo) FindByUserAndVendorTx(tx *gorm.DB, userID, vendorID uuid.UUID) (*models.Rating, error) {
	if s.existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.existing, nil
}

func (s *stubRatingRepo) CreateTx(tx *gorm.DB, rating *models.Rating) error {
	s.created = rating
	return nil
}

func (s *stubRatingRepo) UpdateValueTx(tx *gorm.DB, id uuid.UUID, value float64) error {
	s.updated = &value
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func buildRateFixture(t *testing.T, vendor *models.Vendor, existing *models.Rating) (Service, *stubVendorRepo, *stubRatingRepo) {
	t.Helper()
	vendorRepo := &stubVendorRepo{vendor: vendor}
	ratingRepo := &stubRatingRepo{existing: existing}
	svc, err := NewService(vendorRepo, ratingRepo, stubTxRunner{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, vendorRepo, ratingRepo
}

func TestRateFirstSubmission(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	svc, vendorRepo, ratingRepo := buildRateFixture(t, vendor, nil)

	dto, err := svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), vendor.ID, RateInput{Rating: floatPtr(4)})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}

	if ratingRepo.created == nil || ratingRepo.created.Value != 4 {
		t.Fatalf("expected rating row with value 4, got %+v", ratingRepo.created)
	}
	args := vendorRepo.ratingArgs
	if args == nil || args.rating != 4 || args.sum != 4 || args.count != 1 {
		t.Fatalf("expected aggregate 4/4/1 got %+v", args)
	}
	if dto.RatingDisplay != "4 (1 rating)" {
		t.Fatalf("expected display %q got %q", "4 (1 rating)", dto.RatingDisplay)
	}
}

func TestRateReplacesPriorContribution(t *testing.T) {
	vendor := &models.Vendor{
		ID:          uuid.New(),
		Name:        "Acme",
		Rating:      3,
		RatingSum:   6,
		RatingCount: 2,
	}
	existing := &models.Rating{ID: uuid.New(), Value: 2}
	svc, vendorRepo, ratingRepo := buildRateFixture(t, vendor, existing)

	dto, err := svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), vendor.ID, RateInput{Rating: floatPtr(5)})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}

	if ratingRepo.created != nil {
		t.Fatalf("expected no new rating row, got %+v", ratingRepo.created)
	}
	if ratingRepo.updated == nil || *ratingRepo.updated != 5 {
		t.Fatalf("expected rating row updated to 5, got %v", ratingRepo.updated)
	}
	args := vendorRepo.ratingArgs
	if args == nil || args.sum != 9 || args.count != 2 || args.rating != 4.5 {
		t.Fatalf("expected aggregate 4.5/9/2 got %+v", args)
	}
	if dto.Rating != 4.5 {
		t.Fatalf("expected dto rating 4.5 got %v", dto.Rating)
	}
}

func TestRateAcceptsSubScoreTriple(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	svc, vendorRepo, _ := buildRateFixture(t, vendor, nil)

	dto, err := svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), vendor.ID, RateInput{
		Price:   intPtr(5),
		Time:    intPtr(4),
		Quality: intPtr(3),
	})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}

	if vendorRepo.ratingArgs == nil || vendorRepo.ratingArgs.rating != 4 {
		t.Fatalf("expected triple average 4 got %+v", vendorRepo.ratingArgs)
	}
	if dto.RatingDisplay != "4 (1 rating)" {
		t.Fatalf("expected display %q got %q", "4 (1 rating)", dto.RatingDisplay)
	}
}

func TestRateRejectsPartialTriple(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	svc, vendorRepo, ratingRepo := buildRateFixture(t, vendor, nil)

	_, err := svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), vendor.ID, RateInput{
		Price: intPtr(5),
		Time:  intPtr(4),
	})
	if err == nil {
		t.Fatalf("expected validation error for partial triple")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vendorRepo.ratingArgs != nil || ratingRepo.created != nil {
		t.Fatalf("expected no writes on rejected submission")
	}
}

func TestRateRejectsOutOfRangeValue(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	svc, _, _ := buildRateFixture(t, vendor, nil)

	for _, value := range []float64{0, 0.5, 5.5, -1} {
		_, err := svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), vendor.ID, RateInput{Rating: floatPtr(value)})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %v, got %v", value, err)
		}
	}
}

func TestRateVendorNotFound(t *testing.T) {
	vendorRepo := &stubVendorRepo{findErr: gorm.ErrRecordNotFound}
	svc, err := NewService(vendorRepo, &stubRatingRepo{}, stubTxRunner{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Rate(context.Background(), enums.UserRoleMember, uuid.New(), uuid.New(), RateInput{Rating: floatPtr(4)})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListWithholdsPriceFromMembers(t *testing.T) {
	price := decimal.NewFromInt(1200)
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme", Price: &price}
	svc, _, _ := buildRateFixture(t, vendor, nil)

	memberList, err := svc.List(context.Background(), enums.UserRoleMember)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if memberList[0].Price != nil {
		t.Fatalf("expected price withheld for member, got %v", memberList[0].Price)
	}

	adminList, err := svc.List(context.Background(), enums.UserRoleAdmin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if adminList[0].Price == nil || !adminList[0].Price.Equal(price) {
		t.Fatalf("expected price for admin, got %v", adminList[0].Price)
	}
}

func TestDeleteMissingVendor(t *testing.T) {
	svc, _, _ := buildRateFixture(t, &models.Vendor{ID: uuid.New(), Name: "Acme"}, nil)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRejectsBlankName(t *testing.T) {
	vendor := &models.Vendor{ID: uuid.New(), Name: "Acme"}
	svc, _, _ := buildRateFixture(t, vendor, nil)

	blank := "   "
	_, err := svc.Update(context.Background(), enums.UserRoleAdmin, vendor.ID, UpdateVendorInput{Name: &blank})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateStartsUnrated(t *testing.T) {
	svc, _, _ := buildRateFixture(t, &models.Vendor{ID: uuid.New(), Name: "seed"}, nil)

	dto, err := svc.Create(context.Background(), enums.UserRoleAdmin, CreateVendorDTO{Name: "New Vendor"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Rating != 0 || dto.RatingCount != 0 {
		t.Fatalf("expected unrated vendor got %+v", dto)
	}
	if dto.RatingDisplay != "Not rated yet" {
		t.Fatalf("expected %q got %q", "Not rated yet", dto.RatingDisplay)
	}
}
