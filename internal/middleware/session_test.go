package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionEcho(m *SessionManager) (http.Handler, *string) {
	var seen string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))
	return h, &seen
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("expected session cookie on response")
	return nil
}

func TestSessionMiddlewareMintsAndReusesID(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	h, seen := sessionEcho(m)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/riddle", nil))
	first := *seen
	if first == "" {
		t.Fatal("expected session id in context")
	}
	cookie := sessionCookie(t, rr)
	if !cookie.HttpOnly || cookie.MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodPost, "/solve", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if *seen != first {
		t.Fatalf("session id changed: %s -> %s", first, *seen)
	}
}

func TestSessionMiddlewareRejectsForeignCookie(t *testing.T) {
	issuer := NewSessionManager("other-secret", time.Hour, false)
	token, err := issuer.sign("6f1c2d4e-8a1b-4c3d-9e0f-123456789abc")
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	m := NewSessionManager("secret", time.Hour, false)
	h, seen := sessionEcho(m)

	req := httptest.NewRequest(http.MethodGet, "/riddle", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if *seen == "" || *seen == "6f1c2d4e-8a1b-4c3d-9e0f-123456789abc" {
		t.Fatalf("expected a fresh session id, got %q", *seen)
	}
}

func TestSessionMiddlewareRejectsExpiredCookie(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager("secret", time.Minute, false)
	m.now = func() time.Time { return now }

	token, err := m.sign("6f1c2d4e-8a1b-4c3d-9e0f-123456789abc")
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}
	if _, ok := m.parse(token); !ok {
		t.Fatal("expected fresh token to parse")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := m.parse(token); ok {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestSessionMiddlewareRejectsNonUUIDSubject(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	token, err := m.sign("not-a-uuid")
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}
	if _, ok := m.parse(token); ok {
		t.Fatal("expected non-uuid subject to be rejected")
	}
	if _, ok := m.parse("garbage"); ok {
		t.Fatal("expected garbage token to be rejected")
	}
}
