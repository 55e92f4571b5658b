package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/pinggolf/btp-planning-core/internal/auth"
)

func newTestServerForMiddleware() *Server {
	return &Server{authManager: auth.NewManager(sessions.NewCookieStore([]byte("test-secret-32-bytes-long-enough")))}
}

func TestAuthMiddlewareRefusesRequestWithoutSession(t *testing.T) {
	s := newTestServerForMiddleware()
	called := false
	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/devis", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if called {
		t.Fatal("expected the protected handler not to run")
	}
}

func TestAuthMiddlewareAllowsAuthenticatedRequest(t *testing.T) {
	s := newTestServerForMiddleware()

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	loginW := httptest.NewRecorder()
	if err := s.authManager.Login(loginW, loginReq, auth.Identity{UserID: 1, Role: "commercial"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	called := false
	handler := s.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/devis", nil)
	for _, c := range loginW.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Fatal("expected the protected handler to run")
	}
}

func TestAdminMiddlewareRefusesNonAdminRole(t *testing.T) {
	s := newTestServerForMiddleware()

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	loginW := httptest.NewRecorder()
	if err := s.authManager.Login(loginW, loginReq, auth.Identity{UserID: 1, Role: "commercial"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	handler := s.adminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/articles", nil)
	for _, c := range loginW.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
