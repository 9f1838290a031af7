package dashboard

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
	"github.com/nargizhn/primehub-backend/pkg/logger"
)

type stubVendorLister struct {
	records []models.Vendor
	err     error
}

func (s stubVendorLister) List(ctx context.Context) ([]models.Vendor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestDeriveCountsPendingAndNewRequests(t *testing.T) {
	records := []models.Vendor{
		{Name: "Rated", RatingCount: 3, AgreementNumber: "AG-100"},
		{Name: "Fresh", RatingCount: 0, AgreementNumber: ""},
	}

	got := Derive(records)

	if got.Total != 2 {
		t.Fatalf("expected total 2 got %d", got.Total)
	}
	if got.PendingRatings != 1 {
		t.Fatalf("expected 1 pending rating got %d", got.PendingRatings)
	}
	if got.NewRequests != 1 {
		t.Fatalf("expected 1 new request got %d", got.NewRequests)
	}
}

func TestDeriveTreatsWhitespaceAgreementAsNewRequest(t *testing.T) {
	records := []models.Vendor{
		{Name: "Spaces", RatingCount: 1, AgreementNumber: "   "},
	}

	got := Derive(records)

	if got.NewRequests != 1 {
		t.Fatalf("expected whitespace agreement to count as new request, got %d", got.NewRequests)
	}
	if got.PendingRatings != 0 {
		t.Fatalf("expected no pending ratings got %d", got.PendingRatings)
	}
}

func TestOverviewZeroesOnListFailure(t *testing.T) {
	svc, err := NewService(stubVendorLister{err: fmt.Errorf("connection refused")}, testLogger())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	got := svc.Overview(context.Background())

	if got != (Metrics{}) {
		t.Fatalf("expected zero metrics on failure got %+v", got)
	}
}

func TestOverviewDerivesFromRepository(t *testing.T) {
	records := []models.Vendor{
		{Name: "A", RatingCount: 2, AgreementNumber: "AG-1"},
		{Name: "B", RatingCount: 0, AgreementNumber: "AG-2"},
		{Name: "C", RatingCount: 0, AgreementNumber: ""},
	}
	svc, err := NewService(stubVendorLister{records: records}, testLogger())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	got := svc.Overview(context.Background())

	want := Metrics{Total: 3, PendingRatings: 2, NewRequests: 1}
	if got != want {
		t.Fatalf("expected %+v got %+v", want, got)
	}
}
