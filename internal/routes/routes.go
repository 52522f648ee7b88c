package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/handlers"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/middleware"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, intake *services.IntakeService, sink services.Sink) {
	whatsappHandler := handlers.NewWhatsAppHandler(intake)
	healthHandler := handlers.NewHealthHandler(sink)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to ChatVicSal!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":        "/health",
				"webhook":       "/webhook/whatsapp",
				"test_whatsapp": "/test/whatsapp",
			},
		})
	})

	// Health check reflects the spreadsheet connection
	app.Get("/health", healthHandler.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// WhatsApp webhook - signature validation can be disabled for ngrok
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		webhooks.Post("/whatsapp", whatsappHandler.HandleWebhook)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  WhatsApp webhook validation DISABLED for development")
		}
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsappHandler.HandleWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)
}
