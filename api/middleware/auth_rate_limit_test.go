package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubRateStore struct {
	counts map[string]int64
}

func newStubRateStore() *stubRateStore {
	return &stubRateStore{counts: map[string]int64{}}
}

func (s *stubRateStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postLogin(handler http.Handler, body string, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, newStubRateStore(), nil)(okHandler())

	for i := 0; i < 2; i++ {
		if rec := postLogin(handler, `{"email":"a@example.com"}`, "10.0.0.9"); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i+1, rec.Code)
		}
	}
	if rec := postLogin(handler, `{"email":"a@example.com"}`, "10.0.0.9"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit got %d", rec.Code)
	}
}

func TestAuthRateLimitTracksEmailAcrossIPs(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, newStubRateStore(), nil)(okHandler())

	body := `{"email":"Target@Example.com"}`
	if rec := postLogin(handler, body, "10.0.0.1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec := postLogin(handler, `{"email":"target@example.com"}`, "10.0.0.2"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec := postLogin(handler, body, "10.0.0.3"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email on third ip got %d", rec.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newStubRateStore(), nil)(okHandler())

	for i := 0; i < 10; i++ {
		if rec := postLogin(handler, `{"email":"a@example.com"}`, "10.0.0.9"); rec.Code != http.StatusOK {
			t.Fatalf("expected pass-through got %d", rec.Code)
		}
	}
}

func TestAuthRateLimitLeavesBodyReadable(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(r.Body); err != nil {
			t.Fatalf("read body: %v", err)
		}
		seen = buf.String()
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthRateLimit(policy, newStubRateStore(), nil)(next)

	body := `{"email":"a@example.com","password":"secret"}`
	if rec := postLogin(handler, body, "10.0.0.9"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if seen != body {
		t.Fatalf("expected body re-readable downstream, got %q", seen)
	}
}
