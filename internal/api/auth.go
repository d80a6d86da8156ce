package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token lifetimes

	"hoststore/internal/auth"       // Token generation and sessions
	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Session cookie name

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest mirrors the public registration form
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`  // Email must be valid
	Name     string `json:"name" binding:"required,min=2"`   // Name must be at least 2 characters
	Password string `json:"password" binding:"required,min=6"` // Password must be at least 6 characters
}

// LoginRequest carries member credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// userBody strips the credential hash from a user for responses
func userBody(u *domain.User) gin.H {
	return gin.H{
		"id":        u.ID,        // User ID
		"email":     u.Email,     // Email
		"name":      u.Name,      // Display name
		"role":      u.Role,      // Role
		"balance":   u.Balance,   // Wallet balance
		"avatar":    u.Avatar,    // Avatar data URL
		"createdAt": u.CreatedAt, // Creation timestamp
	}
}

// RegisterHandler creates a new member account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		email := strings.ToLower(req.Email) // Lowercase email to ensure uniqueness
		// Check if user already exists
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			// Duplicate email, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Email:    email,        // Lowercased email
			Name:     req.Name,     // Display name
			Password: string(hash), // Hashed password
			Role:     domain.RoleUser,
			IsActive: true,
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index race: another request inserted the same email
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Email
		}).Info("User registered") // Log registration
		// Return the created user without the password
		c.JSON(http.StatusOK, gin.H{"message": "User created successfully", "user": userBody(&user)})
	}
}

// LoginHandler authenticates a user and issues both credential shapes: a JWT
// for API clients and an opaque session token set as a cookie for browsers
func LoginHandler(db *gorm.DB, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Deactivated accounts cannot log in
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
			return
		}
		// Generate the JWT for bearer clients
		token, err := auth.GenerateJWT(user.ID, user.Role, jwtSecret, sessionTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Persist a session row for cookie clients
		sess, err := auth.CreateSession(db, user.ID, sessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		// Set the session cookie (HttpOnly)
		c.SetCookie(middleware.SessionCookie, sess.Token, int(sessionTTL.Seconds()), "/", "", false, true)
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
			"role":    user.Role,
		}).Info("User logged in") // Log login
		// Return both credentials and the user
		c.JSON(http.StatusOK, gin.H{
			"token":        token,           // Bearer JWT
			"sessionToken": sess.Token,      // Opaque session token
			"user":         userBody(&user), // The authenticated user
		})
	}
}

// LogoutHandler deletes the caller's session row and clears the cookie. The
// JWT cannot be revoked; it simply ages out.
func LogoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The opaque token may arrive as a cookie or a bearer header
		token, _ := c.Cookie(middleware.SessionCookie)
		if token == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}
		if token != "" {
			_ = auth.DeleteSession(db, token) // Remove session row
		}
		// Clear the cookie
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
