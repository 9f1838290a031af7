package dashboard

import (
	"strings"

	"github.com/nargizhn/primehub-backend/pkg/db/models"
)

// Metrics summarizes the vendor list for the dashboard.
type Metrics struct {
	Total          int `json:"total"`
	PendingRatings int `json:"pending_ratings"`
	NewRequests    int `json:"new_requests"`
}

// Derive folds the vendor list into dashboard metrics. A vendor is pending
// until it has at least one rating; it is a new request while its agreement
// number is empty after trimming whitespace.
func Derive(records []models.Vendor) Metrics {
	m := Metrics{Total: len(records)}
	for i := range records {
		if records[i].RatingCount == 0 {
			m.PendingRatings++
		}
		if strings.TrimSpace(records[i].AgreementNumber) == "" {
			m.NewRequests++
		}
	}
	return m
}
