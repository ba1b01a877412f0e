package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/serializer"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/service"
)

const ClaimsKey = "claims"

// RequireSession validates the bearer token and stores the claims on
// the gin context. The token may also arrive as a query parameter for
// websocket clients that cannot set headers.
func RequireSession(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			token = q
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				serializer.AuthErr("", errors.New("missing bearer token")))
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("", err))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// SessionClaims pulls the verified claims off the context.
func SessionClaims(c *gin.Context) (*service.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}
