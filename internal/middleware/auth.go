package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alkhaled/pkg/response"
)

// ErrInvalidPIN rejects a login with a wrong device PIN.
var ErrInvalidPIN = errors.New("invalid PIN")

// GetJWTSecret returns the HMAC signing key.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if gin.Mode() == gin.ReleaseMode {
			panic("FATAL: JWT_SECRET environment variable is required in release mode")
		}
		secret = "default_super_secret_key" // Development fallback only
	}
	return []byte(secret)
}

// pinHash is the bcrypt hash of the device PIN. Auth is disabled entirely
// when no hash is configured, matching the open local use of the original
// app.
func pinHash() string {
	return os.Getenv("AUTH_PIN_HASH")
}

// AuthEnabled reports whether a device PIN is configured.
func AuthEnabled() bool {
	return pinHash() != ""
}

// Login verifies the device PIN and issues a 24h access token.
func Login(pin string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(pinHash()), []byte(pin)); err != nil {
		return "", ErrInvalidPIN
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "device",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(GetJWTSecret())
}

// RequireAuth validates the bearer token on every request. A no-op when no
// PIN is configured.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !AuthEnabled() {
			c.Next()
			return
		}

		// Try cookie first, fall back to Authorization header
		tokenString, cookieErr := c.Cookie("access_token")
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		c.Next()
	}
}
