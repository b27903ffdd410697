package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"filerelay/internal/service"
)

// RegisterRoutes attaches the ops surface to the provided Fiber app. db may be
// nil when the in-process record store is active; /health then reports healthy
// with no dependency to check.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.RelayService, gatherer prometheus.Gatherer) {
	app.Get("/healthz", LivenessProbe())
	app.Get("/health", HealthCheck(db))
	app.Get("/stats", Stats(svc))
	app.Get("/metrics", Metrics(gatherer))
}

// LivenessProbe is a bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// HealthCheck reports readiness. With a durable store wired it pings the
// database; without one there is nothing to fail.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "store": "memory"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy", "store": "postgres"})
	}
}

// Stats exposes record store statistics as JSON.
func Stats(svc service.RelayService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(st)
	}
}

// Metrics serves the prometheus registry in text exposition format.
func Metrics(gatherer prometheus.Gatherer) fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	)
	return func(c *fiber.Ctx) error {
		h(c.Context())
		return nil
	}
}
