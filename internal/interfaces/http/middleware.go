package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout acota el contexto de cada petición; los casos de uso lo propagan al almacenamiento.
// d <= 0 deja el contexto sin tope.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// httpObserver lo implementa *metrics.Registry.
type httpObserver interface {
	ObserveHTTP(method, route, status string, elapsed time.Duration)
}

// RequestMetrics cuenta peticiones y latencia por ruta registrada (no por path, para acotar cardinalidad).
func RequestMetrics(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		obs.ObserveHTTP(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}
