package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
)

func newTestManager() *Manager {
	return NewManager(sessions.NewCookieStore([]byte("test-secret-32-bytes-long-enough")))
}

func TestManagerLoginThenIdentifyRoundTrips(t *testing.T) {
	m := newTestManager()

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	if err := m.Login(w, loginReq, Identity{UserID: 7, UserName: "alice", Role: "conducteur"}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected Login to set a session cookie")
	}

	identifyReq := httptest.NewRequest(http.MethodGet, "/api/devis", nil)
	for _, c := range cookies {
		identifyReq.AddCookie(c)
	}

	identity, err := m.Identify(identifyReq)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if identity.UserID != 7 || identity.Role != "conducteur" || identity.UserName != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestManagerIdentifyRefusesRequestWithoutSession(t *testing.T) {
	m := newTestManager()
	req := httptest.NewRequest(http.MethodGet, "/api/devis", nil)

	if _, err := m.Identify(req); err == nil {
		t.Fatal("expected an error identifying a request with no session")
	}
}

func TestManagerLogoutExpiresCookie(t *testing.T) {
	m := newTestManager()

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	if err := m.Login(w, loginReq, Identity{UserID: 1, Role: "admin"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	cookies := w.Result().Cookies()

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, c := range cookies {
		logoutReq.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	if err := m.Logout(w2, logoutReq); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	logoutCookies := w2.Result().Cookies()
	if len(logoutCookies) == 0 {
		t.Fatal("expected Logout to set an expiring cookie")
	}
	if logoutCookies[0].MaxAge >= 0 {
		t.Fatalf("expected a negative MaxAge to expire the cookie, got %d", logoutCookies[0].MaxAge)
	}
}
