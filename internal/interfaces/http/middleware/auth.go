package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Context keys populated by RequireAuth
const (
	ClaimsKey   = "auth_claims"
	TenantIDKey = "auth_tenant_id"
	UserIDKey   = "auth_user_id"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// RequireAuth validates the bearer token and stores the caller's tenant and
// user IDs in the context. Every tenant-scoped route sits behind it; the
// tenant ID never comes from the request body or query.
func RequireAuth(jwtService *auth.JWTService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			log.Debug("token rejected",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			code := "INVALID_TOKEN"
			message := "Invalid token"
			if err == auth.ErrExpiredToken {
				code = "TOKEN_EXPIRED"
				message = "Token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		tenantID, err := claims.GetTenantUUID()
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(TenantIDKey, tenantID)
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// RequireRole allows only callers whose token carries one of the given
// roles. It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions",
			},
		})
	}
}

// GetClaims returns the validated claims, or nil outside RequireAuth
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetTenantID returns the caller's tenant ID, or uuid.Nil outside RequireAuth
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(TenantIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserID returns the caller's user ID, or uuid.Nil outside RequireAuth
func GetUserID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
