package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/bookstore-api/pkg/logger"
	"github.com/jhoicas/bookstore-api/pkg/metrics"
)

const (
	HeaderRequestID  = "X-Request-ID"
	LocalRequestID   = "request_id"
	unmatchedRouteID = "unmatched"
)

// RequestLogger asigna un X-Request-ID, registra cada petición y alimenta las métricas HTTP.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		elapsed := time.Since(start)

		route := unmatchedRouteID
		if r := c.Route(); r != nil && r.Path != "/" {
			route = r.Path
		}
		metrics.ObserveHTTP(c.Method(), route, status, elapsed)

		evt := log.Info()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http request")
		return err
	}
}

// GetRequestID devuelve el id de la petición actual.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
