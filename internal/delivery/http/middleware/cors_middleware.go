package middleware

import (
	"net/http"
	"strings"

	"area1337-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists who may call the API from a browser
type CORSConfig struct {
	// Exact origins that are always allowed, e.g. https://area1337.com
	AllowedOrigins []string
	// Allowed only outside production (astro dev, preview servers)
	DevOrigins []string
	// Preview deployments: https://<anything>.<suffix>
	PreviewSuffix string
	Production    bool
}

// CORSMiddleware adds CORS headers for the static site's browser requests.
// Disallowed origins get no CORS headers and preflights are refused with 403.
func CORSMiddleware(cfg CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins)+len(cfg.DevOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	if !cfg.Production {
		for _, o := range cfg.DevOrigins {
			allowed[strings.TrimRight(o, "/")] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Same-origin and non-browser requests carry no Origin
		isAllowed := origin == "" || allowed[origin]

		if !isAllowed && cfg.PreviewSuffix != "" && strings.HasPrefix(origin, "https://") {
			host := strings.TrimPrefix(origin, "https://")
			// One extra label only: abc123.area1337.pages.dev, not evil.com/.area1337.pages.dev
			if sub, ok := strings.CutSuffix(host, "."+cfg.PreviewSuffix); ok && sub != "" && !strings.ContainsAny(sub, "./:") {
				isAllowed = true
			}
		}

		if isAllowed && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID, Retry-After")
			c.Header("Access-Control-Max-Age", "86400")
		}
		if !isAllowed {
			security.DefaultLogger().LogOriginRejected(c.Request.Context(), origin, c.ClientIP(), RequestIDFrom(c))
		}

		// Caches must differentiate by Origin
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if isAllowed {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		c.Next()
	}
}
