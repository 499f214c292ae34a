package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/config"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

var testJWT = config.JWTConfig{
	Secret:            "middleware-test-secret",
	Issuer:            "petpal-test",
	ExpirationMinutes: 5,
}

func mintToken(t *testing.T, role enums.UserRole) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, userID
}

func sessionCapture(captured *pkgAuth.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, nil)(sessionCapture(&pkgAuth.Session{}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	handler := Auth(testJWT, nil)(sessionCapture(&pkgAuth.Session{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthSeedsSession(t *testing.T) {
	var sess pkgAuth.Session
	handler := Auth(testJWT, nil)(sessionCapture(&sess))

	token, userID := mintToken(t, enums.UserRolePetOwner)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if sess.UserID != userID {
		t.Fatalf("expected user %s in session, got %s", userID, sess.UserID)
	}
	if sess.Role != enums.UserRolePetOwner {
		t.Fatalf("unexpected role %s", sess.Role)
	}
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	var sess pkgAuth.Session
	handler := OptionalAuth(testJWT, nil)(sessionCapture(&sess))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if sess.Authenticated() {
		t.Fatal("anonymous request must produce an empty session")
	}
}

func TestOptionalAuthStillRejectsBadToken(t *testing.T) {
	handler := OptionalAuth(testJWT, nil)(sessionCapture(&pkgAuth.Session{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole(enums.UserRoleAdmin, nil)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/x/status", nil)
	req = req.WithContext(WithSession(req.Context(), pkgAuth.Session{UserID: uuid.New(), Role: enums.UserRolePetOwner}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/x/status", nil)
	req = req.WithContext(WithSession(req.Context(), pkgAuth.Session{UserID: uuid.New(), Role: enums.UserRoleAdmin}))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", w.Code)
	}
}
