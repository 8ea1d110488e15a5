package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/ops_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware tracks successful API calls as PostHog events named after
// the route, e.g. "/api/v1/finances/expenses" becomes "api_v1_finances_expenses".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || skipTracking(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"request_id":  c.Writer.Header().Get("X-Request-ID"),
		}
		for _, p := range c.Params {
			props["param_"+p.Key] = p.Value
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent sends a named domain event for the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["path"] = c.Request.URL.Path
	posthogClient.Enqueue(userID, eventName, properties)
}

func skipTracking(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/swagger")
}
