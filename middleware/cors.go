package middleware

import (
	"net/http"
	"os"
	"strings"

	"blog-api/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORS configures cross-origin headers.
//   - Outside production any origin is reflected, with credentials enabled
//     so the session cookie works from a dev frontend on another port.
//   - In production only origins listed in the comma-separated
//     ALLOWED_ORIGINS env var are reflected.
func CORS() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	allowed := map[string]struct{}{}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin := strings.TrimSpace(o); origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	const methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	const headers = "Origin, Content-Type, Authorization"

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Header("Vary", "Origin")

		if origin != "" {
			_, ok := allowed[origin]
			if !isProd || ok {
				// The session cookie is a credential: reflect the origin
				// rather than using a wildcard.
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
