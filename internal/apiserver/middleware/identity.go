package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/errorx"
)

// ClientIdentity resolves the portal caller from the X-User-Id and X-Username
// headers. The pair must match a stored user, whose role sets the capabilities.
func ClientIdentity(db database.Database, eh *errorx.ErrorHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.GetHeader(cnst.XUserID))
		username := strings.TrimSpace(c.GetHeader(cnst.XUsername))
		if rawID == "" || username == "" {
			eh.HandleError(c, errorx.ErrUnauthorized)
			return
		}
		id, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || id == 0 {
			eh.HandleError(c, errorx.ErrUnauthorized)
			return
		}

		user, err := db.GetUserByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, database.ErrRecordNotFound) {
				eh.HandleError(c, errorx.ErrUnauthorized)
				return
			}
			eh.HandleError(c, err)
			return
		}
		if user.Username != username {
			eh.HandleError(c, errorx.ErrUnauthorized)
			return
		}
		if user.Role == cnst.RoleAdmin {
			eh.HandleError(c, errorx.ErrForbidden)
			return
		}

		c.Set(cnst.CtxKeyIdentity, booking.NewIdentity(user.ID, user.Username, user.Role))
		c.Next()
	}
}

// IdentityFromContext returns the caller resolved by ClientIdentity, or the
// operator behind verified claims, or an anonymous visitor.
func IdentityFromContext(c *gin.Context) booking.Identity {
	if v, ok := c.Get(cnst.CtxKeyIdentity); ok {
		if id, ok := v.(booking.Identity); ok {
			return id
		}
	}
	if claims := ClaimsFromContext(c); claims != nil {
		return booking.NewIdentity(claims.UserID, claims.Username, claims.Role)
	}
	return booking.Anonymous()
}
