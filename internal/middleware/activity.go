package middleware

import (
	"log"
	"net/http"
	"time"

	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ActivityMiddleware records an audit-trail entry for every authenticated
// mutating request.
type ActivityMiddleware struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityMiddleware(activityRepo repositories.ActivityRepository) *ActivityMiddleware {
	return &ActivityMiddleware{activityRepo: activityRepo}
}

func (m *ActivityMiddleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			if c.Request().Method == http.MethodGet {
				return err
			}
			actorID, ok := common.GetActorIDFromContext(c.Request().Context())
			if !ok {
				return err
			}

			activity := &models.UserActivity{
				ID:        uuid.New(),
				UserID:    actorID,
				Action:    c.Request().Method + " " + c.Request().URL.Path,
				Timestamp: time.Now().UTC(),
			}
			if logErr := m.activityRepo.Create(c.Request().Context(), activity); logErr != nil {
				// Audit writes never fail the request they describe.
				log.Printf("WARN: failed to record activity for %s: %v", actorID, logErr)
			}

			return err
		}
	}
}
