package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/middleware"
)

const secret = "test-secret"

func protected(t *testing.T, admin bool) (http.Handler, *bool) {
	t.Helper()
	called := false
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		c, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			t.Error("claims missing from context")
		} else if c.Email == "" {
			t.Error("claims not populated")
		}
		w.WriteHeader(http.StatusOK)
	})
	if admin {
		h = middleware.RequireAdmin(h)
	}
	return middleware.Auth(secret)(h), &called
}

func TestAuthRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"bare token", "sometoken"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, called := protected(t, false)
			req := httptest.NewRequest("GET", "/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if *called {
				t.Error("handler ran despite failed auth")
			}
		})
	}
}

func TestAuthWrongSecret(t *testing.T) {
	tok, _ := auth.GenerateToken(1, "a@b.com", false, "other-secret", "")
	h, called := protected(t, false)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if *called {
		t.Error("handler ran with a foreign-key token")
	}
}

func TestAuthPassesClaims(t *testing.T) {
	tok, _ := auth.GenerateToken(9, "a@b.com", false, secret, "")
	h, called := protected(t, false)

	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !*called {
		t.Error("handler never ran")
	}
}

func TestRequireAdmin(t *testing.T) {
	userTok, _ := auth.GenerateToken(1, "user@b.com", false, secret, "")
	adminTok, _ := auth.GenerateToken(2, "admin@b.com", true, secret, "")

	t.Run("non-admin forbidden", func(t *testing.T) {
		h, called := protected(t, true)
		req := httptest.NewRequest("POST", "/services", nil)
		req.Header.Set("Authorization", "Bearer "+userTok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
		if *called {
			t.Error("handler ran for non-admin")
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		h, called := protected(t, true)
		req := httptest.NewRequest("POST", "/services", nil)
		req.Header.Set("Authorization", "Bearer "+adminTok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !*called {
			t.Error("handler never ran")
		}
	})
}

func TestRateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2) // 1 rps, burst 2
	h := middleware.RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/users/login", nil)
		req.RemoteAddr = "198.51.100.7:4321"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", codes[2])
	}

	// a different client has its own bucket
	req := httptest.NewRequest("POST", "/users/login", nil)
	req.RemoteAddr = "198.51.100.8:4321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client should not be limited, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no origins configured is a no-op", func(t *testing.T) {
		h := middleware.CORS(nil)(next)
		req := httptest.NewRequest("GET", "/services", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("unexpected CORS header %q", got)
		}
	})

	t.Run("allowed origin", func(t *testing.T) {
		h := middleware.CORS([]string{"http://localhost:5174"})(next)
		req := httptest.NewRequest("GET", "/services", nil)
		req.Header.Set("Origin", "http://localhost:5174")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5174" {
			t.Errorf("allow-origin: got %q", got)
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		h := middleware.CORS([]string{"http://localhost:5174"})(next)
		req := httptest.NewRequest("GET", "/services", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("unexpected CORS header %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		h := middleware.CORS([]string{"http://localhost:5174"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/services", nil)
		req.Header.Set("Origin", "http://localhost:5174")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204 preflight, got %d", rec.Code)
		}
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/services", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen == "" {
		t.Error("no request id generated")
	}
	if got := rec.Header().Get(middleware.RequestIDHeader); got != seen {
		t.Errorf("header %q != context %q", got, seen)
	}

	// upstream-supplied id is honored
	req = httptest.NewRequest("GET", "/services", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "fixed-id" {
		t.Errorf("expected upstream id to pass through, got %q", seen)
	}
}
