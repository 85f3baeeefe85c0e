package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsPreflightMaxAge bounds how long browsers cache a preflight answer.
const corsPreflightMaxAge = 12 * time.Hour

// createCORSMiddleware returns the CORS handler for the entry API, or nil when CORS
// is off or no configured origin survives validation. The vault normally serves
// local tools on loopback, so it ships disabled.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOrigins)
	for _, origin := range rejected {
		logger.Warn("ignoring malformed CORS origin", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled without any valid origin, middleware not installed")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        corsPreflightMaxAge,
	})
}

// parseOrigins splits a comma separated origin list. Origins must carry a scheme
// and a host; anything else is returned in rejected.
func parseOrigins(raw string) (origins, rejected []string) {
	for _, field := range strings.Split(raw, ",") {
		origin := strings.TrimSpace(field)
		if origin == "" {
			continue
		}
		if origin != "*" {
			u, err := url.Parse(origin)
			if err != nil || u.Scheme == "" || u.Host == "" {
				rejected = append(rejected, origin)
				continue
			}
		}
		origins = append(origins, strings.TrimSuffix(origin, "/"))
	}
	return origins, rejected
}
