package middleware

import (
	"stocktrack/internal/common"
	"stocktrack/internal/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware gates every request through the fixed-window limiter,
// keyed by client network identity.
type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
}

func NewRateLimitMiddleware(limiter *ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

func (m *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := c.RealIP()
			if clientID == "" {
				clientID = "unknown"
			}
			if err := m.limiter.Admit(c.Request().Context(), clientID); err != nil {
				return common.SendError(c, err)
			}
			return next(c)
		}
	}
}
