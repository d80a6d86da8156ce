package auth

import (
	"errors"  // Sentinel errors
	"strings" // Token shape inspection

	"hoststore/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ErrUnauthenticated covers every credential failure: missing, malformed,
// expired, unknown user or deactivated account. Handlers map it to 401.
var ErrUnauthenticated = errors.New("invalid or expired credentials")

// Identity is the resolved caller, attached to the request context by the
// Authenticate middleware
type Identity struct {
	UserID   string // User primary key
	Email    string // User email
	Name     string // Display name
	Role     string // OWNER, ADMIN or USER
	IsActive bool   // Always true for a resolved identity
}

// ResolveIdentity turns a bearer or cookie token into an Identity. Two
// credential shapes are accepted: a JWT (exactly two dots) is verified
// against the signing secret, anything else is looked up as an opaque
// session token with an expiry check. Both paths end at the same user row,
// so role and active-flag checks are never duplicated per strategy.
func ResolveIdentity(db *gorm.DB, secret, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated // No credential supplied
	}
	var userID string
	if strings.Count(token, ".") == 2 {
		// JWT path: verify signature and expiry, extract the user id claim
		claims, err := ParseJWT(token, secret)
		if err != nil {
			return nil, ErrUnauthenticated
		}
		userID = claims.UserID
	} else {
		// Opaque path: session row lookup with expiry check
		var sess domain.Session
		if err := db.Where("token = ?", token).First(&sess).Error; err != nil {
			return nil, ErrUnauthenticated
		}
		if sess.Expired() {
			return nil, ErrUnauthenticated
		}
		userID = sess.UserID
	}
	// Resolve the user row; a deleted or deactivated user fails closed
	var user domain.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return &Identity{
		UserID:   user.ID,       // User primary key
		Email:    user.Email,    // User email
		Name:     user.Name,     // Display name
		Role:     user.Role,     // User role
		IsActive: user.IsActive, // Active flag
	}, nil
}
