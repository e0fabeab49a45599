package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mindwell/clinic-scheduler/internal/service/audit"
	"github.com/mindwell/clinic-scheduler/pkg/auth"
)

const contextClaims = "auth_claims"

type AuthMiddleware struct {
	jwt *auth.JWTService
}

func NewAuthMiddleware(jwt *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate verifies the bearer token and stores the claims.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(contextClaims, claims)
		c.Next()
	}
}

// RequireRole allows the request through only for the listed roles.
// Admin always passes.
func (m *AuthMiddleware) RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			abortUnauthorized(c, "not authenticated")
			return
		}

		if claims.Role != auth.RoleAdmin {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error":   gin.H{"message": "insufficient role"},
				})
				return
			}
		}

		c.Next()
	}
}

func claimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(contextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// ActorFrom builds the audit actor for the authenticated caller. Falls
// back to an anonymous actor on unauthenticated routes.
func ActorFrom(c *gin.Context) audit.Actor {
	actor := audit.Actor{IP: c.ClientIP()}
	if claims, ok := claimsFrom(c); ok {
		actor.ID = claims.UserID
		actor.Role = string(claims.Role)
	}
	return actor
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"message": msg},
	})
}
