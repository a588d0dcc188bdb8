package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/fims/pkg/logger"
)

// HeaderRequestID cabecera de correlación entre cliente, logs y auditoría.
const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// RequestID reutiliza el X-Request-ID entrante o genera uno nuevo.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)
		return c.Next()
	}
}

// RequestLogger registra cada petición con zerolog: 5xx en error, 4xx en warn, el resto en info.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", localString(c, LocalRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("actor", GetUserID(c)).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
