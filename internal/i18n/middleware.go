package i18n

import (
	"github.com/gin-gonic/gin"
	"github.com/stemwithlyn/booking/internal/common/cnst"
)

// Middleware stores the negotiated language on the gin context
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(cnst.XLang, getLanguageFromRequest(c.Request))
		c.Next()
	}
}
