package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SanketJawali/tinker-store-api/services/identity"
)

// ClaimFrom rebuilds the identity claim stored by RequireAuth. Zero-valued
// fields mean the token did not carry them.
func ClaimFrom(c *gin.Context) identity.Claim {
	return identity.Claim{
		Email: c.GetString(ClaimEmailKey),
		Name:  c.GetString(ClaimNameKey),
	}
}
