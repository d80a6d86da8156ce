package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"hoststore/internal/auth" // Identity resolution

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// identityKey is the context key the resolved Identity is stored under
const identityKey = "identity"

// SessionCookie is the cookie name browser clients carry their opaque
// session token in
const SessionCookie = "session_token"

// Authenticate resolves the caller's credential (Bearer header first, then
// the session cookie) into an Identity and stores it in the request context.
// Every authenticated route runs through this once instead of re-checking
// tokens per handler.
func Authenticate(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c) // Prefer the Authorization header
		if token == "" {
			// Fall back to the session cookie for browser flows
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				token = cookie
			}
		}
		ident, err := auth.ResolveIdentity(db, jwtSecret, token)
		if err != nil {
			// Any resolution failure is unauthenticated
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(identityKey, ident) // Store identity in context
		c.Next()                  // Proceed to the next handler
	}
}

// RequireRoles aborts with 403 unless the resolved identity's role is in the
// given set. Must run after Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := IdentityFrom(c)
		if ident == nil {
			// Authenticate did not run or failed
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the role against the allowed set
		for _, r := range roles {
			if ident.Role == r {
				c.Next() // Role accepted, proceed
				return
			}
		}
		// Role not in the set
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient role."})
	}
}

// IdentityFrom returns the Identity stored by Authenticate, or nil
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	ident, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return ident
}

// bearerToken extracts the token from the Authorization header, if any
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization") // Get Authorization header
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
}
