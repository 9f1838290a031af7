package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nargizhn/primehub-backend/api/responses"
	"github.com/nargizhn/primehub-backend/api/validators"
	"github.com/nargizhn/primehub-backend/internal/vendors"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
	"github.com/nargizhn/primehub-backend/pkg/logger"
)

type vendorCreateRequest struct {
	Name            string           `json:"name" validate:"required,min=1"`
	Category        string           `json:"category"`
	City            string           `json:"city"`
	Representative  string           `json:"representative"`
	Contact         string           `json:"contact"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Notes           string           `json:"notes"`
	AgreementNumber string           `json:"agreement_number"`
	BankAccount     string           `json:"bank_account"`
	Images          []string         `json:"images,omitempty"`
}

func (r vendorCreateRequest) toDTO() vendors.CreateVendorDTO {
	return vendors.CreateVendorDTO{
		Name:            r.Name,
		Category:        r.Category,
		City:            r.City,
		Representative:  r.Representative,
		Contact:         r.Contact,
		Price:           r.Price,
		Notes:           r.Notes,
		AgreementNumber: r.AgreementNumber,
		BankAccount:     r.BankAccount,
		Images:          r.Images,
	}
}

type vendorUpdateRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Category        *string          `json:"category,omitempty"`
	City            *string          `json:"city,omitempty"`
	Representative  *string          `json:"representative,omitempty"`
	Contact         *string          `json:"contact,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	AgreementNumber *string          `json:"agreement_number,omitempty"`
	BankAccount     *string          `json:"bank_account,omitempty"`
	Images          *[]string        `json:"images,omitempty"`
}

func (r vendorUpdateRequest) toInput() vendors.UpdateVendorInput {
	return vendors.UpdateVendorInput{
		Name:            r.Name,
		Category:        r.Category,
		City:            r.City,
		Representative:  r.Representative,
		Contact:         r.Contact,
		Price:           r.Price,
		Notes:           r.Notes,
		AgreementNumber: r.AgreementNumber,
		BankAccount:     r.BankAccount,
		Images:          r.Images,
	}
}

// vendorRateRequest accepts either a precomputed average or the raw sub-score
// triple. The service rejects partial triples.
type vendorRateRequest struct {
	Rating  *float64 `json:"rating,omitempty"`
	Price   *int     `json:"price,omitempty"`
	Time    *int     `json:"time,omitempty"`
	Quality *int     `json:"quality,omitempty"`
}

func (r vendorRateRequest) toInput() vendors.RateInput {
	return vendors.RateInput{
		Rating:  r.Rating,
		Price:   r.Price,
		Time:    r.Time,
		Quality: r.Quality,
	}
}

// VendorList returns every vendor visible to the caller.
func VendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		_, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// VendorGet returns a single vendor record.
func VendorGet(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		_, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.GetByID(r.Context(), role, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// VendorCreate persists a new vendor.
func VendorCreate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		_, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vendorCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Create(r.Context(), role, payload.toDTO())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

// VendorUpdate adjusts the mutable vendor fields.
func VendorUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		_, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vendorUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Update(r.Context(), role, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// VendorDelete removes a vendor.
func VendorDelete(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

// VendorRate records the caller's rating and returns the updated vendor.
func VendorRate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		userID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vendorRateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithVendorID(ctx, id.String())
		}

		vendor, err := svc.Rate(ctx, role, userID, id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}
