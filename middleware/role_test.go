package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chequered/config"
	"chequered/utils"

	"github.com/gin-gonic/gin"
)

func setupRoleRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = "" })

	r := gin.New()
	r.GET("/staff", RequireRole(utils.RoleStaff, utils.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(OperatorIDKey))
	})
	r.GET("/admin", RequireRole(utils.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func token(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken("gate-1", role, ttl)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestRequireRole(t *testing.T) {
	r := setupRoleRouter(t)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/staff", "", http.StatusUnauthorized},
		{"not bearer", "/staff", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/staff", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "/staff", "Bearer " + token(t, utils.RoleStaff, -time.Minute), http.StatusUnauthorized},
		{"staff on staff", "/staff", "Bearer " + token(t, utils.RoleStaff, time.Hour), http.StatusOK},
		{"admin on staff", "/staff", "Bearer " + token(t, utils.RoleAdmin, time.Hour), http.StatusOK},
		{"staff on admin", "/admin", "Bearer " + token(t, utils.RoleStaff, time.Hour), http.StatusForbidden},
		{"admin on admin", "/admin", "Bearer " + token(t, utils.RoleAdmin, time.Hour), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRequireRoleSetsOperator(t *testing.T) {
	r := setupRoleRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, utils.RoleStaff, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "gate-1" {
		t.Fatalf("operator = %q, want gate-1", w.Body.String())
	}
}

func limitedRouter(t *testing.T, perMin int, trusted []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if err := r.SetTrustedProxies(trusted); err != nil {
		t.Fatalf("SetTrustedProxies: %v", err)
	}
	r.Use(RateLimitMiddleware(perMin))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func get(r *gin.Engine, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitIgnoresUntrustedForwardingHeaders(t *testing.T) {
	r := limitedRouter(t, 2, nil)

	// rotating the header does not buy a fresh budget
	codes := []int{
		get(r, "203.0.113.7:4000", "198.51.100.1"),
		get(r, "203.0.113.7:4000", "198.51.100.2"),
		get(r, "203.0.113.7:4000", "198.51.100.3"),
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v, want [200 200 429]", codes)
	}
	if code := get(r, "203.0.113.8:4000", ""); code != http.StatusOK {
		t.Fatalf("other client status = %d, want 200", code)
	}
}

func TestRateLimitTrustedProxy(t *testing.T) {
	r := limitedRouter(t, 1, []string{"10.0.0.1"})

	if code := get(r, "10.0.0.1:4000", "198.51.100.1"); code != http.StatusOK {
		t.Fatalf("first client status = %d", code)
	}
	if code := get(r, "10.0.0.1:4000", "198.51.100.2"); code != http.StatusOK {
		t.Fatalf("second client behind the proxy status = %d, want 200", code)
	}
	if code := get(r, "10.0.0.1:4000", "198.51.100.1"); code != http.StatusTooManyRequests {
		t.Fatalf("repeat client status = %d, want 429", code)
	}
}

func TestRateLimiterStoreEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(5)
	store.now = func() time.Time { return now }

	store.getLimiter("198.51.100.1")
	now = now.Add(limiterIdleTTL + time.Minute)
	store.getLimiter("198.51.100.2")

	if _, ok := store.limiters["198.51.100.1"]; ok {
		t.Fatal("idle limiter was not evicted")
	}
	if len(store.limiters) != 1 {
		t.Fatalf("limiters = %d, want 1", len(store.limiters))
	}
}
