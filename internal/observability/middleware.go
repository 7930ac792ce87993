package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware traces every request and records its duration and status.
// The request span is installed as the user context so GORM statements issued
// with c.UserContext() become its children.
func Middleware(cfg *Config) fiber.Handler {
	tracer := cfg.Tracer()
	metrics := cfg.Metrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx, span := tracer.StartRequest(c.UserContext(), c.Method(), c.Path())
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			tracer.RecordError(span, err)
		}

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := c.Route().Path
		tracer.EndRequest(span, route, status)
		metrics.RecordRequest(ctx, c.Method(), route, status, time.Since(start))
		return err
	}
}
