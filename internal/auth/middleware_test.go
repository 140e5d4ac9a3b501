package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject, email string, secret []byte) string {
	t.Helper()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		claims, err := ParseToken(signToken(t, userID.String(), "a@b.test", testSecret), testSecret)
		require.NoError(t, err)
		require.Equal(t, userID.String(), claims.Subject)
		require.Equal(t, "a@b.test", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken(signToken(t, userID.String(), "a@b.test", []byte("other")), testSecret)
		require.Error(t, err)
	})

	t.Run("non-uuid subject", func(t *testing.T) {
		_, err := ParseToken(signToken(t, "not-a-uuid", "a@b.test", testSecret), testSecret)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
		require.NoError(t, err)
		_, err = ParseToken(signed, testSecret)
		require.Error(t, err)
	})
}

type staticRoles struct {
	role db.Role
}

func (s staticRoles) Role(_ context.Context, _ uuid.UUID) (db.Role, error) {
	return s.role, nil
}

func TestAuthenticateMiddleware(t *testing.T) {
	userID := uuid.New()
	var captured Identity
	handler := Authenticate(testSecret, staticRoles{role: db.RoleResident})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	t.Run("attaches identity", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID.String(), "a@b.test", testSecret))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, userID, captured.UserID)
		require.Equal(t, db.RoleResident, captured.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/bookings", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/bookings", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("resident is forbidden", func(t *testing.T) {
		handler := Authenticate(testSecret, staticRoles{role: db.RoleResident})(RequireAdmin(next))
		req := httptest.NewRequest("GET", "/api/v1/admin/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), "a@b.test", testSecret))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		handler := Authenticate(testSecret, staticRoles{role: db.RoleAdmin})(RequireAdmin(next))
		req := httptest.NewRequest("GET", "/api/v1/admin/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.NewString(), "a@b.test", testSecret))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	ownedSlot := &db.Slot{ID: uuid.New(), OwnerID: &owner}
	openSlot := &db.Slot{ID: uuid.New()}

	require.True(t, IsOwnerOrAdmin(Identity{UserID: owner, Role: db.RoleResident}, ownedSlot))
	require.False(t, IsOwnerOrAdmin(Identity{UserID: other, Role: db.RoleResident}, ownedSlot))
	require.True(t, IsOwnerOrAdmin(Identity{UserID: other, Role: db.RoleAdmin}, ownedSlot))
	require.True(t, IsOwnerOrAdmin(Identity{UserID: other, Role: db.RoleResident}, openSlot))
}
