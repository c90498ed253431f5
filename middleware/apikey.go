package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/api"
)

// RequireAPIKey guards admin endpoints with a static X-API-KEY header.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.GetHeader("X-API-KEY") != key {
			api.Error(c, http.StatusUnauthorized, api.CodeUnauthorized, "Invalid or missing API key")
			c.Abort()
			return
		}
		c.Next()
	}
}
