package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snatchup/globals"
	"snatchup/kv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func mintToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		Email:  "test@gmail.com",
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func recordingHandle(gotUser *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*gotUser, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateAcceptsLiveSession(t *testing.T) {
	sessions := kv.NewMemory()
	token := mintToken(t, "u1")
	if err := sessions.Set(context.Background(), globals.SessionKey("u1"), []byte(token)); err != nil {
		t.Fatalf("store session: %v", err)
	}

	var gotUser string
	a := NewAuth(sessions)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.Authenticate(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for live session, got %d", rec.Code)
	}
	if gotUser != "u1" {
		t.Fatalf("expected userId u1 in context, got %q", gotUser)
	}
}

func TestAuthenticateRejectsLoggedOutToken(t *testing.T) {
	sessions := kv.NewMemory()
	token := mintToken(t, "u1")
	if err := sessions.Set(context.Background(), globals.SessionKey("u1"), []byte(token)); err != nil {
		t.Fatalf("store session: %v", err)
	}
	// logout removes the registry entry
	if err := sessions.Delete(context.Background(), globals.SessionKey("u1")); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	var gotUser string
	a := NewAuth(sessions)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.Authenticate(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
	if gotUser != "" {
		t.Fatalf("handler should not run after logout, got userId %q", gotUser)
	}
}

func TestAuthenticateRejectsRotatedToken(t *testing.T) {
	sessions := kv.NewMemory()
	old := mintToken(t, "u1")
	time.Sleep(time.Second) // expiry moves, so the fresh token differs
	fresh := mintToken(t, "u1")
	if old == fresh {
		t.Skip("tokens identical, cannot distinguish rotation")
	}
	if err := sessions.Set(context.Background(), globals.SessionKey("u1"), []byte(fresh)); err != nil {
		t.Fatalf("store session: %v", err)
	}

	var gotUser string
	a := NewAuth(sessions)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+old)
	rec := httptest.NewRecorder()
	a.Authenticate(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for superseded token, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsMissingOrGarbageToken(t *testing.T) {
	a := NewAuth(kv.NewMemory())

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"garbage", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			a.Authenticate(recordingHandle(&gotUser))(rec, req, nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestOptionalAuthProceedsAnonymously(t *testing.T) {
	a := NewAuth(kv.NewMemory())

	var gotUser string
	req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	rec := httptest.NewRecorder()
	a.OptionalAuth(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous request, got %d", rec.Code)
	}
	if gotUser != "" {
		t.Fatalf("expected no userId for anonymous request, got %q", gotUser)
	}
}

func TestOptionalAuthAttachesLiveSession(t *testing.T) {
	sessions := kv.NewMemory()
	token := mintToken(t, "u1")
	if err := sessions.Set(context.Background(), globals.SessionKey("u1"), []byte(token)); err != nil {
		t.Fatalf("store session: %v", err)
	}

	var gotUser string
	a := NewAuth(sessions)
	req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.OptionalAuth(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "u1" {
		t.Fatalf("expected userId u1 in context, got %q", gotUser)
	}
}

func TestOptionalAuthIgnoresRevokedToken(t *testing.T) {
	token := mintToken(t, "u1")

	var gotUser string
	a := NewAuth(kv.NewMemory()) // registry has no entry for u1
	req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	a.OptionalAuth(recordingHandle(&gotUser))(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "" {
		t.Fatalf("expected anonymous fallthrough for revoked token, got %q", gotUser)
	}
}
