package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"promenu/internal/domain/tenant"
	"promenu/internal/pkg/cookie"
	"promenu/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxIdentityEmailKey = "identity_email"

// IdentityMiddleware reads the identity provider's token (cookie or bearer
// header) and exposes the identity email to handlers. The email is the only
// claim the data layer consumes.
type IdentityMiddleware struct {
	jwt *jwt.Service
}

func NewIdentityMiddleware(jwtService *jwt.Service) *IdentityMiddleware {
	return &IdentityMiddleware{jwt: jwtService}
}

func (m *IdentityMiddleware) RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in identity middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxIdentityEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalIdentity attaches the identity when a valid token is present but
// never aborts. Storefront pages are public; admin affordances appear only
// when the gate passes.
func (m *IdentityMiddleware) OptionalIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxIdentityEmailKey, claims.Email)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetIdentityEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ctxIdentityEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok && s != ""
}

// GetIdentity returns the request identity, or nil for anonymous visitors.
func GetIdentity(c *gin.Context) *tenant.Identity {
	email, ok := GetIdentityEmail(c)
	if !ok {
		return nil
	}
	return &tenant.Identity{Email: email}
}
