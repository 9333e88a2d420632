package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, userID int, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runJWT(t *testing.T, secret []byte, authHeader string) (*httptest.ResponseRecorder, int, bool) {
	t.Helper()
	var gotID int
	var gotOK bool
	h := JWTMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/my-comparisons", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, gotID, gotOK
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	secret := []byte("test-secret")
	// Issued now with a 1h lifetime: still valid at T+59m.
	token := signToken(t, secret, 42, time.Now().Add(time.Minute))

	rr, id, ok := runJWT(t, secret, "Bearer "+token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	if !ok || id != 42 {
		t.Errorf("GetUserID: got (%d, %v), want (42, true)", id, ok)
	}
}

func TestJWTMiddleware_TokenLifetimeWindow(t *testing.T) {
	secret := []byte("test-secret")
	issued := time.Now().Add(-59 * time.Minute)
	stillValid := signToken(t, secret, 1, issued.Add(time.Hour))

	rr, _, _ := runJWT(t, secret, "Bearer "+stillValid)
	if rr.Code != http.StatusOK {
		t.Errorf("token at T+59m: got %d, want 200", rr.Code)
	}

	issued = time.Now().Add(-61 * time.Minute)
	expired := signToken(t, secret, 1, issued.Add(time.Hour))

	rr, _, _ = runJWT(t, secret, "Bearer "+expired)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("token at T+61m: got %d, want 401", rr.Code)
	}
	if body := rr.Body.String(); !containsJSONError(body, "token has expired") {
		t.Errorf("expected expiry message, got: %s", body)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	rr, _, _ := runJWT(t, []byte("s"), "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want 401", rr.Code)
	}
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, []byte("other-secret"), 1, time.Now().Add(time.Hour))
	rr, _, _ := runJWT(t, []byte("real-secret"), "Bearer "+token)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: got %d, want 401", rr.Code)
	}
	if body := rr.Body.String(); !containsJSONError(body, "invalid token") {
		t.Errorf("expected invalid token message, got: %s", body)
	}
}

func containsJSONError(body, message string) bool {
	return len(body) > 0 && (body == `{"error":"`+message+`"}`+"\n" ||
		body == `{"error":"`+message+`"}`)
}
