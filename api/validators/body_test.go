package validators

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	var payload loginPayload
	err := DecodeJSONBody(jsonRequest(`{"email":"a@example.com","password":"secret"}`), &payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Email != "a@example.com" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var payload loginPayload
	err := DecodeJSONBody(jsonRequest(`{"email":"a@example.com","password":"x","admin":true}`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldsByJSONTag(t *testing.T) {
	var payload loginPayload
	err := DecodeJSONBody(jsonRequest(`{"password":"secret"}`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected detail map, got %T", typed.Details())
	}
	if details["email"] != "is required" {
		t.Fatalf("expected json tag field name in details, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var payload loginPayload
	err := DecodeJSONBody(jsonRequest(`{"email":`), &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func requestWithRouteContext(req *http.Request, routeCtx *chi.Context) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("vendorId", id.String())
	req := httptest.NewRequest(http.MethodGet, "/api/vendors/"+id.String(), nil)
	req = requestWithRouteContext(req, routeCtx)

	got, err := ParseUUIDParam(req, "vendorId")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s got %s", id, got)
	}
}

func TestParseUUIDParamInvalid(t *testing.T) {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("vendorId", "nope")
	req := httptest.NewRequest(http.MethodGet, "/api/vendors/nope", nil)
	req = requestWithRouteContext(req, routeCtx)

	_, err := ParseUUIDParam(req, "vendorId")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
