package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/db"
)

// Claims are what the managed auth provider signs into its access tokens.
// Only the subject (the user's uuid) and email are trusted from the token;
// the application role is always looked up from the profiles table.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the authenticated requester, carried through the request
// context and passed explicitly into services.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   db.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == db.RoleAdmin
}

// RoleSource resolves a user's application role. Implemented by the
// profile repository.
type RoleSource interface {
	Role(ctx context.Context, userID uuid.UUID) (db.Role, error)
}

type contextKey struct{}

var identityKey contextKey

func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

// WithIdentity attaches an identity to the context, as Authenticate does.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// ParseToken verifies a bearer token against the provider secret and
// extracts the requester's uuid and email.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("token subject is not a uuid: %w", err)
	}
	return claims, nil
}

// Authenticate verifies the Authorization header and attaches the
// requester's Identity, including the role resolved through roles.
// Users without a profile row default to resident.
func Authenticate(secret []byte, roles RoleSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID := uuid.MustParse(claims.Subject)
			role, err := roles.Role(r.Context(), userID)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ident := Identity{UserID: userID, Email: claims.Email, Role: role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
		})
	}
}

// RequireAdmin gates the admin subrouter. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := FromContext(r.Context())
		if !ok || !ident.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsOwnerOrAdmin is the single authorization predicate for slot access:
// admins always pass, unowned slots are open to everyone, owned slots only
// to their owner. Used by the booking admission decision and by the admin
// override paths.
func IsOwnerOrAdmin(ident Identity, slot *db.Slot) bool {
	if ident.IsAdmin() {
		return true
	}
	if slot.OwnerID == nil {
		return true
	}
	return *slot.OwnerID == ident.UserID
}
