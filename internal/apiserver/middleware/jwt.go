package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/auth/jwt"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/errorx"
)

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(cnst.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != strings.TrimSpace(cnst.BearerPrefix) || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuthMiddleware rejects requests without a valid operator token
func JWTAuthMiddleware(jwtService *jwt.Service, eh *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			eh.HandleError(c, errorx.ErrUnauthorized)
			return
		}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			eh.HandleError(c, errorx.ErrUnauthorized.WithDetail("reason", err.Error()))
			return
		}
		c.Set(cnst.CtxKeyClaims, claims)
		c.Next()
	}
}

// OptionalJWTMiddleware records the claims of a valid token and lets every
// request through. A present but invalid token is still rejected.
func OptionalJWTMiddleware(jwtService *jwt.Service, eh *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(cnst.HeaderAuthorization) == "" {
			c.Next()
			return
		}
		JWTAuthMiddleware(jwtService, eh)(c)
	}
}

// AdminOnly requires claims with the admin role, run it after JWTAuthMiddleware
func AdminOnly(eh *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ClaimsFromContext(c).IsAdmin() {
			eh.HandleError(c, errorx.ErrForbidden)
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified token claims or nil
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(cnst.CtxKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
