package middleware

import (
	"court_agenda_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyActor = "actor"

// Default actor recorded when the identity layer supplies none.
const anonymousActorName = "system"

// ActorContext extracts the current actor identity for history entries.
// Authentication itself lives in the gateway in front of this service;
// it forwards the resolved identity through these headers.
func ActorContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := services.Actor{
				ID:   c.Request().Header.Get("X-Actor-Id"),
				Name: c.Request().Header.Get("X-Actor-Name"),
			}
			if actor.Name == "" {
				actor.Name = anonymousActorName
			}
			c.Set(ContextKeyActor, actor)
			return next(c)
		}
	}
}

// GetActor retrieves the current actor from the request context
func GetActor(c echo.Context) services.Actor {
	if actor, ok := c.Get(ContextKeyActor).(services.Actor); ok {
		return actor
	}
	return services.Actor{Name: anonymousActorName}
}
