package controllers

import (
	"net/http"

	"github.com/nargizhn/primehub-backend/api/responses"
	"github.com/nargizhn/primehub-backend/internal/dashboard"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
	"github.com/nargizhn/primehub-backend/pkg/logger"
)

// DashboardOverview returns the derived vendor metrics. Failures inside the
// service degrade to zeroed metrics, so this endpoint never blocks the
// dashboard on a data error.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Overview(r.Context()))
	}
}
