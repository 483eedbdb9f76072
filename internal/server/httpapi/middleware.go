package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/credkeeper/credkeeper/internal/server/auth"
)

const claimsContextKey = "authClaims"

// authRequired extracts and verifies the bearer token, storing its claims in
// the request context. All verification failures look identical to the
// client; the precise reason goes to the log for telemetry.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		claims, err := s.auth.VerifyToken(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "reason", err.Error())
			respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func claimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
