package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/booking-crm/internal/config"
	"github.com/BruksfildServices01/booking-crm/internal/httperr"
)

const (
	ContextUserID     = "userID"
	ContextBusinessID = "businessID"
	ContextUserRole   = "userRole"
)

// AuthMiddleware accepts HS256 bearer tokens issued by the auth handler and
// puts the user, business and role into the gin context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Invalid token.")
			c.Abort()
			return
		}

		userID, ok1 := claims["sub"].(float64)
		businessID, ok2 := claims["businessId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 {
			httperr.Unauthorized(c, "invalid_token_payload", "Invalid token.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextBusinessID, uint(businessID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole rejects users whose role is not in roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Not allowed for your role.")
		c.Abort()
	}
}
