package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestRequireConsoleAuth_Passthrough(t *testing.T) {
	called := false
	h := RequireConsoleAuth("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("passthrough falló: called=%v code=%d", called, rec.Code)
	}
}

func TestRequireConsoleAuth_MissingHeader(t *testing.T) {
	h := RequireConsoleAuth("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debería llegar al handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("falta WWW-Authenticate")
	}
}

func TestRequireConsoleAuth_BadToken(t *testing.T) {
	h := RequireConsoleAuth("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debería llegar al handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, "otro-secreto", "op1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestRequireConsoleAuth_ValidToken(t *testing.T) {
	var gotOperator string
	h := RequireConsoleAuth("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOperator = GetOperator(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+signHS256(t, "s3cret", "op1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if gotOperator != "op1" {
		t.Fatalf("operator = %q", gotOperator)
	}
}
