package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pitwall/fantasy-gp/internal/domain/elevation"
	"github.com/pitwall/fantasy-gp/internal/domain/user"
	"github.com/pitwall/fantasy-gp/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, v.err
}

func TestRequireAuth_PassesPrincipal(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "usr-1", Role: user.RoleStandard}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/races/race-r02/selection", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.UserID != "usr-1" {
		t.Fatalf("expected principal usr-1, got %q", seen.UserID)
	}
}

func TestRequireAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "usr-1"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("next handler must not run")
	})

	for _, header := range []string{"", "token-abc", "Basic dXNlcg==", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/v1/races/race-r02/selection", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		RequireAuth(verifier, next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireAuth_VerifierErrorPropagates(t *testing.T) {
	verifier := stubVerifier{err: fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/races/race-r02/selection", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireElevation_ChecksGrantOnEveryRequest(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	manager := elevation.NewManagerWithClock("paddock-key", 15*time.Minute, func() time.Time { return now })
	grant, err := manager.Issue("usr-1", "paddock-key")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireElevation(manager, next)

	makeRequest := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/drivers", nil)
		req.Header.Set("X-Elevation-Token", token)
		req = req.WithContext(withPrincipal(req.Context(), user.Principal{UserID: "usr-1", Role: user.RoleAdmin}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := makeRequest(grant.Token); rec.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", rec.Code)
	}
	if rec := makeRequest("wrong-token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: expected 401, got %d", rec.Code)
	}

	// The grant dies mid-session; the same token is now rejected.
	now = now.Add(16 * time.Minute)
	if rec := makeRequest(grant.Token); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", rec.Code)
	}
}

func TestRequireElevation_MissingPrincipal(t *testing.T) {
	manager := elevation.NewManager("paddock-key", 15*time.Minute)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/drivers", nil)
	rec := httptest.NewRecorder()
	RequireElevation(manager, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("accepts matching token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/apply-results", nil)
		req.Header.Set("X-Internal-Job-Token", "job-secret")
		rec := httptest.NewRecorder()

		RequireInternalJobToken("job-secret", next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/apply-results", nil)
		req.Header.Set("X-Internal-Job-Token", "wrong")
		rec := httptest.NewRecorder()

		RequireInternalJobToken("job-secret", next).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unconfigured token disables the route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/apply-results", nil)
		req.Header.Set("X-Internal-Job-Token", "job-secret")
		rec := httptest.NewRecorder()

		RequireInternalJobToken("", next).ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestCORS_AllowedOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/season-2026/races", nil)
	req.Header.Set("Origin", "https://app.fantasy-gp.example")
	rec := httptest.NewRecorder()

	CORS([]string{"https://app.fantasy-gp.example"}, next).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.fantasy-gp.example" {
		t.Fatalf("unexpected allow origin: %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatalf("expected allow headers to be set")
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/seasons/season-2026/races", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()

	CORS([]string{"https://app.fantasy-gp.example"}, next).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("next handler must not run for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/v1/seasons/season-2026/races", nil)
	req.Header.Set("Origin", "https://app.fantasy-gp.example")
	rec := httptest.NewRecorder()

	CORS([]string{"*"}, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
