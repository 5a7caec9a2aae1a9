package utils

import (
	"time" // Time for token expiration

	"restaurant_system/internal/domain" // Importing domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 15 * time.Minute

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"` // Custom claim for user ID
	Role                 string `json:"role"`    // Custom claim for the user's role
	jwt.RegisteredClaims        // Standard claims, Subject carries the email
}

// GenerateJWT creates a signed token for a user and returns it with its expiry
func GenerateJWT(user *domain.User, secret string) (string, time.Time, error) {
	expiresAt := time.Now().Add(TokenTTL) // Token expires in 15 minutes
	// Set token claims
	claims := Claims{
		UserID: user.ID,   // Custom claim for user ID
		Role:   user.Role, // Role claim, checked by the order service
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,                     // Subject is the user's email
			ExpiresAt: jwt.NewNumericDate(expiresAt),  // Expiry claim
			IssuedAt:  jwt.NewNumericDate(time.Now()), // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	return signed, expiresAt, err
}

// ParseJWT parses and validates a JWT token string.
// The returned error wraps jwt.ErrTokenExpired for expired tokens so callers
// can report expiry distinctly from malformed or tampered tokens.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
