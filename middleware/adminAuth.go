package middleware

import (
	"net/http"

	"apnakam/services/admin"
	"apnakam/utils"

	"github.com/gin-gonic/gin"
)

const ctxAdmin = "adminUser"

// JWTAuthAdminMiddleware accepts only tokens issued by the admin login.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			c.Abort()
			return
		}

		sub, role, err := utils.ExtractClaims(tokenString)
		if err != nil || role != admin.RoleAdmin {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized admin access", "")
			c.Abort()
			return
		}

		c.Set(ctxAdmin, sub)
		c.Next()
	}
}
