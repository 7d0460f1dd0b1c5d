package middleware

import (
	"net/http"
	"strings"

	"khanza/internal/auth"
	"khanza/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	identityKey = "admin_identity"
	roleKey     = "userRole"
)

// AdminAuth requires a valid Bearer token and stores the caller's identity.
func AdminAuth(tokens auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "Token tidak ditemukan")
			return
		}
		id, err := tokens.Parse(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(identityKey, id)
		c.Set(roleKey, id.Role)
		c.Next()
	}
}

// Identity returns the admin set by AdminAuth.
func Identity(c *gin.Context) (domain.AdminIdentity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.AdminIdentity{}, false
	}
	id, ok := v.(domain.AdminIdentity)
	return id, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
