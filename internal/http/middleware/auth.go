package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authUserIDKey = "auth_user_id"
	authRoleKey   = "auth_role"
)

// RequireAuth verifies a bearer JWT and, when roles are given, checks the
// role claim against them. Passenger self-registration stays public; every
// admin and agent operation sits behind this.
func RequireAuth(secret []byte, roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		role, _ := claims["role"].(string)
		if len(allowed) > 0 && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		if id, ok := claims["user_id"].(float64); ok {
			c.Set(authUserIDKey, int64(id))
		}
		c.Set(authRoleKey, role)
		c.Next()
	}
}

// AuthRole returns the authenticated role stored by RequireAuth.
func AuthRole(c *gin.Context) string {
	if v, ok := c.Get(authRoleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// AuthUserID returns the authenticated user id stored by RequireAuth.
func AuthUserID(c *gin.Context) int64 {
	if v, ok := c.Get(authUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
