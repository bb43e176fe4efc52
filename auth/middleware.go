package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "auth_user"

func tokenFromHeader(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// verifyRequest checks the bearer token and stores the verified claims on the
// context. It never advances the handler chain; the middlewares own that, so
// no gated handler can run before every check has passed.
func verifyRequest(c *gin.Context, secret []byte) (*Claims, bool) {
	tokenString := tokenFromHeader(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(401, gin.H{
			"error":   "Unauthorized",
			"message": "authentication required, send Authorization: Bearer <token>",
		})
		return nil, false
	}
	claims, err := VerifyToken(secret, tokenString)
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{
			"error":   "Unauthorized",
			"message": "invalid or expired token",
		})
		return nil, false
	}
	c.Set(contextUserKey, claims)
	return claims, true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := verifyRequest(c, secret); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole implies RequireAuth and additionally rejects identities whose
// role is outside the allowed set.
func RequireRole(secret []byte, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyRequest(c, secret)
		if !ok {
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(403, gin.H{
			"error":   "Forbidden",
			"message": "access denied, required roles: " + strings.Join(roles, ", "),
		})
	}
}

// CurrentUser returns the claims stored by RequireAuth.
func CurrentUser(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
