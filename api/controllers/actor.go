package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nargizhn/primehub-backend/api/middleware"
	"github.com/nargizhn/primehub-backend/pkg/enums"
	pkgerrors "github.com/nargizhn/primehub-backend/pkg/errors"
)

// actorFromRequest resolves the authenticated user and role seeded by the auth
// middleware.
func actorFromRequest(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}
	return uid, role, nil
}
