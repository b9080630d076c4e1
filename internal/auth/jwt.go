package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret string
	jwtExpiry = 24 * time.Hour
)

// Claims is the verified identity carried by a session token.
type Claims struct {
	UserID   uint
	Username string
	Email    string
}

// InitJWT loads the signing secret and token lifetime from the environment.
// JWT_EXPIRY accepts a Go duration string and defaults to 24h.
func InitJWT() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if expiry := os.Getenv("JWT_EXPIRY"); expiry != "" {
		parsed, err := time.ParseDuration(expiry)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRY %q: %w", expiry, err)
		}
		jwtExpiry = parsed
	}

	return nil
}

func GenerateToken(userID uint, username string, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"email":    email,
		"exp":      time.Now().Add(jwtExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// VerifyToken checks signature and expiry. Bad signature, expired and
// malformed tokens all collapse into a single error so callers treat them
// uniformly as unauthenticated.
func VerifyToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("invalid or expired token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return Claims{}, fmt.Errorf("invalid or expired token")
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)

	if !ok {
		return Claims{}, fmt.Errorf("invalid or expired token")
	}

	username, _ := mapClaims["username"].(string)
	email, _ := mapClaims["email"].(string)

	return Claims{
		UserID:   uint(userIDFloat),
		Username: username,
		Email:    email,
	}, nil
}
