package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/vicsaltechstyle-dot/ChatVicSal/database"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/routes"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/services"
	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	ctx := context.Background()

	// Initialize session storage
	var store storage.SessionStore
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisStore := storage.NewRedisStore(redisAddr, os.Getenv("REDIS_PASSWORD"), 0, 0)
		if err := redisStore.Ping(ctx); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", redisAddr, err)
		}
		log.Printf("✅ Using Redis session storage at %s", redisAddr)
		store = redisStore
	} else {
		log.Println("⚠️  Using in-memory session storage (sessions lost on restart)")
		store = storage.NewMemoryStore()
	}
	storage.SetStore(store)

	// Connect to Google Sheets; any failure degrades to an unavailable
	// sink rather than crashing the process
	sink := connectSheets(ctx)

	// Build the intake service
	policy := services.FailurePolicy(os.Getenv("SINK_FAILURE_POLICY"))
	intake := services.NewIntakeService(store, services.NewEngine(), sink, policy)

	// Optional lead archive in PostgreSQL
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_NAME") != "" {
		if err := database.Connect(); err != nil {
			log.Printf("⚠️  Lead archive disabled: %v", err)
		} else {
			if err := database.DB.AutoMigrate(&models.Lead{}); err != nil {
				log.Fatal("Failed to migrate database:", err)
			}
			intake.WithArchive(storage.NewDatabaseArchive(database.DB))
			log.Println("✅ Lead archive enabled (PostgreSQL)")
		}
	}

	// Optional owner alert via the Twilio REST API
	if owner := os.Getenv("OWNER_WHATSAPP"); owner != "" {
		twilioService, err := services.NewTwilioService()
		if err != nil {
			log.Printf("⚠️  Owner alerts disabled: %v", err)
		} else {
			intake.WithOwnerAlert(twilioService, owner)
			log.Printf("✅ Owner alerts enabled for %s", owner)
		}
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "ChatVicSal v1.0.0",
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

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app, intake, sink)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 ChatVicSal starting on port %s", port)
	log.Printf("📋 Sheets sink: %s", sinkStatus(sink))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// connectSheets resolves credentials and opens the target spreadsheet.
// Missing or invalid configuration is logged at error severity and the
// sink is marked unavailable for the process lifetime.
func connectSheets(ctx context.Context) services.Sink {
	provider, err := services.ResolveCredentials()
	if err != nil {
		log.Printf("❌ ERROR CRÍTICO DE CONEXIÓN A GOOGLE SHEETS: %v", err)
		return services.UnavailableSink{}
	}

	creds, err := provider.ClientOption()
	if err != nil {
		log.Printf("❌ ERROR CRÍTICO DE CONEXIÓN A GOOGLE SHEETS: credentials via %s: %v", provider.Name(), err)
		return services.UnavailableSink{}
	}

	sink, err := services.NewSheetsSink(ctx, creds, os.Getenv("SHEET_TARGET"))
	if err != nil {
		log.Printf("❌ ERROR CRÍTICO DE CONEXIÓN A GOOGLE SHEETS: %v", err)
		return services.UnavailableSink{}
	}

	log.Printf("✅ Conexión a Google Sheets exitosa (credentials via %s)", provider.Name())
	return sink
}

func sinkStatus(sink services.Sink) string {
	if sink.Healthy() {
		return "connected"
	}
	return "unavailable"
}
