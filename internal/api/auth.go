package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"restaurant_system/internal/domain"     // Importing domain models
	"restaurant_system/internal/middleware" // Claim helpers
	"restaurant_system/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for plain registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for registration with an explicit role.
// Username and password lengths are checked by hand so short fields get
// their own status code instead of a generic binding error.
type RegisterWithRoleRequest struct {
	Username string `json:"username"`                 // Length checked in the handler
	Email    string `json:"email" binding:"required"` // Email must be provided
	Password string `json:"password"`                 // Length checked in the handler
	Role     string `json:"role" binding:"required"`  // Role must be provided
}

// Request struct for the token endpoint (OAuth2 password flow style form).
// The username field carries the account email.
type TokenRequest struct {
	Username string `form:"username" binding:"required"` // Email identifying the account
	Password string `form:"password" binding:"required"` // Password must be provided
}

// Response struct for the token endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed JWT
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// emailPattern is a shallow format check, not full RFC validation
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidEmail checks that the address looks like local@domain.tld
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// createUser hashes the password and inserts a User row
func createUser(g *gorm.DB, username, email, password, role string) (*domain.User, error) {
	// Hash the password before storing it
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username:     username,
		Email:        strings.ToLower(email), // Lowercase email to keep uniqueness case-insensitive
		PasswordHash: string(hash),
		Role:         role,
	}
	// Attempt to create the user in the database
	if err := g.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterHandler creates an account with the default user role
func RegisterHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject addresses that fail the format check
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Wrong email"})
			return
		}
		// Uniqueness is checked by email
		var existing domain.User
		if err := g.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
			// A row came back, so the address is taken
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		user, err := createUser(g, req.Username, req.Email, req.Password, domain.RoleUser)
		if err != nil {
			// Duplicate username also lands here via the unique index
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
			return
		}
		// Log the new account
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Assigned role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// RegisterWithRoleHandler creates an account with a caller-chosen role
func RegisterWithRoleHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterWithRoleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject addresses that fail the format check
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Wrong email"})
			return
		}
		// Minimum password length of 6 on this variant
		if len(req.Password) < 6 {
			c.JSON(http.StatusRequestURITooLong, gin.H{"error": "Password too short"})
			return
		}
		// Username must not be empty
		if len(req.Username) < 1 {
			c.JSON(http.StatusRequestURITooLong, gin.H{"error": "Username too short"})
			return
		}
		// Role is restricted to the two known values
		if req.Role != domain.RoleUser && req.Role != domain.RoleManager {
			c.JSON(http.StatusForbidden, gin.H{"error": "Wrong role"})
			return
		}
		// Uniqueness is checked by email
		var existing domain.User
		if err := g.Where("email = ?", strings.ToLower(req.Email)).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		user, err := createUser(g, req.Username, req.Email, req.Password, req.Role)
		if err != nil {
			// Duplicate username also lands here via the unique index
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
			return
		}
		// Log the new account
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // New user ID
			"role":    user.Role, // Assigned role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// TokenHandler authenticates a user and issues a bearer token
func TokenHandler(g *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database by email
		if err := g.Where("email = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// Unknown account collapses to the same message as a bad password
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		// Generate JWT token
		token, expiresAt, err := utils.GenerateJWT(&user, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Record the session as an audit trail of issued tokens
		session := domain.Session{
			UserID:       user.ID,   // Owning user
			SessionToken: token,     // Issued token
			ExpiresAt:    expiresAt, // Mirrors the exp claim
		}
		if err := g.Create(&session).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to record session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		// Log the login
		logrus.WithFields(logrus.Fields{
			"user_id":    user.ID,    // User ID
			"session_id": session.ID, // Session row ID
		}).Info("Session created")
		// Return the token as a bearer credential
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// MeHandler resolves the current user from the verified token subject
func MeHandler(g *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := middleware.GetEmail(c) // Subject set by the JWT middleware
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Re-resolve the user row by email
		if err := g.Where("email = ?", email).First(&user).Error; err != nil {
			// The token was valid but its subject no longer exists
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication credentials"})
			return
		}
		// Return the profile fields
		c.JSON(http.StatusOK, gin.H{
			"username": user.Username, // Username
			"email":    user.Email,    // Email
			"role":     user.Role,     // Role
		})
	}
}
