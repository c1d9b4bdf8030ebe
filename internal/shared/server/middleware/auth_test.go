package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"capture-backend/internal/shared/auth"
)

func testManager() *auth.Manager {
	return auth.NewManager("test-access", "test-refresh", time.Minute, time.Hour)
}

func newProtectedRouter(m *auth.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(m))
	router.GET("/records", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	return router
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := newProtectedRouter(testManager())

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router := newProtectedRouter(testManager())

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Authorization", "Token abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsTokenSignedWithRefreshSecret(t *testing.T) {
	m := testManager()
	router := newProtectedRouter(m)

	refresh, err := m.MintRefresh("user-1", "ana@example.com")
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAttachesIdentity(t *testing.T) {
	m := testManager()
	router := newProtectedRouter(m)

	access, err := m.MintAccess("user-1", "ana@example.com")
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"userId":"user-1"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
