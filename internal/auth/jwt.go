package auth

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued session token stays valid. Expiry is the only
// invalidation mechanism unless a revocation store is configured.
const TokenTTL = 7 * 24 * time.Hour

// TokenScheme is the Authorization header scheme the gateway issues and accepts.
const TokenScheme = "JWT"

// JWT secret key - in production should be loaded from environment variable
var jwtSecret []byte

func init() {
	// Generate a secure random secret key; replaced via SetJWTSecret at startup.
	jwtSecret = make([]byte, 32)
	if _, err := rand.Read(jwtSecret); err != nil {
		// Fallback to a hardcoded key only for development
		jwtSecret = []byte("development-secret-key-change-in-production")
	}
}

// Claims represents session token claims. Deliberately carries ONLY the
// username: the stored password hash must never be embedded in the token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed session token for the given username.
func GenerateJWT(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "house-gateway",
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT checks token validity and returns the embedded claims.
func ValidateJWT(tokenString string) (*Claims, bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, false
	}

	return claims, true
}

// SetJWTSecret installs the signing secret from configuration. An empty secret
// keeps the random one generated at init.
func SetJWTSecret(secret string) error {
	if secret == "" {
		return nil
	}
	if len(secret) < 16 {
		return errors.New("jwt secret must be at least 16 bytes")
	}
	jwtSecret = []byte(secret)
	return nil
}
