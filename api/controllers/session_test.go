package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/nargizhn/primehub-backend/pkg/auth"
	"github.com/nargizhn/primehub-backend/pkg/auth/session"
	"github.com/nargizhn/primehub-backend/pkg/config"
	"github.com/nargizhn/primehub-backend/pkg/enums"
)

type stubRotator struct {
	rotateErr error
	revokeErr error

	revokedID   string
	newAccessID string
	newToken    string
}

func (s *stubRotator) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.newAccessID, s.newToken, nil
}

func (s *stubRotator) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return s.revokeErr
}

func sessionTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "session-secret",
		Issuer:            "primehub",
		ExpirationMinutes: 15,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, issued time.Time, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, issued, pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleMember,
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestLogoutSucceedsEvenWhenRevokeFails(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{revokeErr: fmt.Errorf("redis down")}
	handler := AuthLogout(rotator, cfg, nil)

	token := mintTestToken(t, cfg, time.Now().UTC(), "session-1")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite revoke failure, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["status"] != "logged_out" {
		t.Fatalf("expected logged_out status got %v", envelope.Data)
	}
	if rotator.revokedID != "session-1" {
		t.Fatalf("expected revoke of session-1, got %q", rotator.revokedID)
	}
}

func TestLogoutAcceptsExpiredToken(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{}
	handler := AuthLogout(rotator, cfg, nil)

	token := mintTestToken(t, cfg, time.Now().UTC().Add(-2*time.Hour), "stale-session")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for expired token, got %d", rec.Code)
	}
	if rotator.revokedID != "stale-session" {
		t.Fatalf("expected revoke of stale-session, got %q", rotator.revokedID)
	}
}

func TestLogoutMissingCredentials(t *testing.T) {
	handler := AuthLogout(&stubRotator{}, sessionTestConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestRefreshIssuesNewTokenPair(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{
		newAccessID: uuid.NewString(),
		newToken:    "fresh-refresh-token",
	}
	handler := AuthRefresh(rotator, cfg, nil)

	token := mintTestToken(t, cfg, time.Now().UTC(), "session-1")
	body := []byte(`{"refresh_token": "old-refresh-token"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "fresh-refresh-token" {
		t.Fatalf("expected rotated refresh token got %q", envelope.Data.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, envelope.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse new access token: %v", err)
	}
	if claims.ID != rotator.newAccessID {
		t.Fatalf("expected new jti %s got %s", rotator.newAccessID, claims.ID)
	}
}

func TestRefreshRejectsInvalidRefreshToken(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := AuthRefresh(rotator, cfg, nil)

	token := mintTestToken(t, cfg, time.Now().UTC(), "session-1")
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader([]byte(`{"refresh_token": "forged"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
