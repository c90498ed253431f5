package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SanketJawali/tinker-store-api/api"
)

// Context keys for the verified identity claim.
const (
	ClaimEmailKey = "claim_email"
	ClaimNameKey  = "claim_name"
)

// RequireAuth verifies the Bearer token and exposes its email/name claims in
// the gin context. The rest of the application treats the token as a black
// box: downstream code only ever sees the claim values. A token without an
// email claim still passes here — the identity resolver rejects it at the
// first write that needs a user row.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		if email, ok := claims["email"].(string); ok {
			c.Set(ClaimEmailKey, email)
		}
		if name, ok := claims["name"].(string); ok {
			c.Set(ClaimNameKey, name)
		}

		c.Next()
	}
}
