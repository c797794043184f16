package middleware

import (
	"net/http"

	"aebox-api/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS restricts browser callers to the configured origin allowlist.
// Requests without an Origin header (curl, server-to-server, webhooks)
// pass through untouched.
func CORS() gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, origin := range config.AppConfig.AllowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if !allowed[origin] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Origin not allowed",
			})
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
