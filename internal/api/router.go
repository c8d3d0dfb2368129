package api

import (
	"gastonauta/internal/api/handlers"
	"gastonauta/pkg/config"
	"gastonauta/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	webhookHandler *handlers.WebhookHandler,
	categorizeHandler *handlers.CategorizeHandler,
	cfg *config.WebhookConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// The parse endpoint is a pure function of its payload and carries no
	// credentials requirement.
	app.Post("/parse", webhookHandler.HandleParse)

	auth := middleware.WebhookAuth(cfg.BearerToken, appLogger)
	app.Post("/webhook/email", auth, webhookHandler.HandleInbound)
	app.Post("/categorize", auth, categorizeHandler.HandleCategorize)

	return app
}
