package middleware

import (
	"github.com/AtizaD/school-assessment-system-sub006/internal/service"
	"github.com/AtizaD/school-assessment-system-sub006/internal/util"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware requires a valid X-CSRF-Token header on state-changing
// attempt routes. Must run after AuthMiddleware.
func CSRFMiddleware(csrf *service.CSRFService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		token := c.GetHeader("X-CSRF-Token")
		if err := csrf.Validate(c.Request.Context(), claims.UserID, token); err != nil {
			util.Forbidden(c, util.ErrInvalidCSRFToken.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}
