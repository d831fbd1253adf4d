package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testKey = "0123456789ABCDEF0123456789ABCDEF"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "sess", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	req := httptest.NewRequest("POST", "/cart/add", nil)
	rec := httptest.NewRecorder()

	RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestRequireSignedIn_WithUser(t *testing.T) {
	req := httptest.NewRequest("POST", "/cart/add", nil)
	req = WithTestUser(req, &SessionUser{ID: "abc", Role: "user"})
	rec := httptest.NewRecorder()

	RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		user *SessionUser
		want int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"wrong role", &SessionUser{ID: "u1", Role: "user"}, http.StatusForbidden},
		{"admin", &SessionUser{ID: "a1", Role: "admin"}, http.StatusOK},
		{"case-insensitive role", &SessionUser{ID: "a2", Role: "Admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/product", nil)
			if tt.user != nil {
				req = WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()

			RequireRole("admin")(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	mgr, err := NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	// Sign in and capture the cookie.
	signinReq := httptest.NewRequest("POST", "/credentials/signin", nil)
	signinRec := httptest.NewRecorder()
	user := SessionUser{ID: "abc123", Name: "Jo Shopper", Email: "jo@example.com", Role: "user"}
	if err := mgr.SignIn(signinRec, signinReq, user); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through the middleware and observe the context user.
	var got *SessionUser
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})
	req := httptest.NewRequest("GET", "/cart/get", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	mgr.LoadSessionUser(inner).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected session user in context")
	}
	if got.ID != user.ID || got.Role != user.Role || got.Email != user.Email {
		t.Errorf("round-tripped user mismatch: %+v", got)
	}
}

func TestSessionReadableAcrossInstances(t *testing.T) {
	// Two managers built from the same config stand in for a restart or
	// a second replica. A cookie written by one must load in the other.
	first, err := NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	second, err := NewSessionManager(testKey, "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	signinReq := httptest.NewRequest("POST", "/credentials/signin", nil)
	signinRec := httptest.NewRecorder()
	user := SessionUser{ID: "abc123", Name: "Jo Shopper", Email: "jo@example.com", Role: "user"}
	if err := first.SignIn(signinRec, signinReq, user); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	var got *SessionUser
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})
	req := httptest.NewRequest("GET", "/cart/get", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	second.LoadSessionUser(inner).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("cookie from one instance did not load in another with the same key")
	}
	if got.ID != user.ID || got.Role != user.Role {
		t.Errorf("cross-instance user mismatch: %+v", got)
	}
}

func TestTokenMinter_RoundTrip(t *testing.T) {
	m, err := NewTokenMinter(testKey, time.Minute)
	if err != nil {
		t.Fatalf("NewTokenMinter: %v", err)
	}

	tok, err := m.Mint("abc123", "user", "Jo Shopper")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "abc123" {
		t.Errorf("UserID: got %q", claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("Role: got %q", claims.Role)
	}
	if claims.Name != "Jo Shopper" {
		t.Errorf("Name: got %q", claims.Name)
	}
}

func TestTokenMinter_Expired(t *testing.T) {
	m, err := NewTokenMinter(testKey, time.Nanosecond)
	if err != nil {
		t.Fatalf("NewTokenMinter: %v", err)
	}
	tok, err := m.Mint("abc123", "user", "Jo")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Parse(tok); err == nil {
		t.Error("expected expired token to fail parsing")
	}
}

func TestTokenMinter_EmptyKey(t *testing.T) {
	if _, err := NewTokenMinter("", time.Minute); err == nil {
		t.Error("expected error for empty token key")
	}
}
