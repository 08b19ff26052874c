package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/andrefasa/user-service/internal/metrics"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Use(metrics.Middleware())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	users := app.Group("/api/v1/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Post("/refresh", h.Refresh)

	// Secured routes
	users.Post("/logout", h.RequireAuth, h.Logout)
	users.Post("/update/password", h.RequireAuth, h.ChangePassword)
	users.Get("/profile", h.RequireAuth, h.GetProfile)
	users.Post("/update/image", h.RequireAuth, h.UpdateProfileImage)
}
