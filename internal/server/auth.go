package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// requireBearerToken gates every task route behind the static shared
// secret. Missing header, malformed scheme, and token mismatch are logged
// as distinct reasons but all surface to the client as the same 401.
func (s *Server) requireBearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		reason := ""
		switch {
		case header == "":
			reason = "authorization header missing"
		default:
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				reason = "invalid authorization scheme"
			} else if parts[1] != s.cfg.APIAuthToken {
				reason = "invalid token"
			}
		}

		if reason != "" {
			s.logger.Warn("rejected request",
				slog.String("path", c.FullPath()),
				slog.String("reason", reason))
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
