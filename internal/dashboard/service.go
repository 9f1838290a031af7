package dashboard

import (
	"context"
	"fmt"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
	"github.com/nargizhn/primehub-backend/pkg/logger"
)

type vendorLister interface {
	List(ctx context.Context) ([]models.Vendor, error)
}

// Service exposes dashboard metrics.
type Service interface {
	Overview(ctx context.Context) Metrics
}

type service struct {
	vendors vendorLister
	logg    *logger.Logger
}

// NewService builds a dashboard service over the vendor repository.
func NewService(vendors vendorLister, logg *logger.Logger) (Service, error) {
	if vendors == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{vendors: vendors, logg: logg}, nil
}

// Overview derives metrics from the current vendor list. When the list cannot
// be loaded the failure is logged and all metrics report zero so the dashboard
// stays usable.
func (s *service) Overview(ctx context.Context) Metrics {
	records, err := s.vendors.List(ctx)
	if err != nil {
		s.logg.Error(ctx, "loading vendor list for dashboard metrics", err)
		return Metrics{}
	}
	return Derive(records)
}
