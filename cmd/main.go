package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Abraxas-365/mailsmith/pkg/config"
	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/Abraxas-365/mailsmith/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	// 1. Configuration and logger
	cfg := config.Load()
	logx.SetDefaultLogger(logx.NewLogger(logx.LoadFromEnv()))

	logx.Info("🚀 Starting Personalized Email Generator API...")

	// 2. Dependency container
	container := NewContainer(context.Background(), cfg)

	// 3. Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "Personalized Email Generator API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             cfg.Server.BodyLimit,
	})

	// 4. Global middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// 5. Routes
	container.Handlers.RegisterRoutes(app)
	logx.Info("✓ Email routes registered")

	// 6. 404 handler
	app.Use(notFoundHandler)

	printRouteSummary()

	// 7. Start with graceful shutdown
	startServer(app, cfg.Server)
}

// notFoundHandler handles 404 errors
func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"message":    "The requested endpoint does not exist",
		"request_id": requestID(c),
	})
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	logx.WithFields(logx.Fields{
		"path":       c.Path(),
		"method":     c.Method(),
		"ip":         c.IP(),
		"request_id": requestID(c),
	}).WithError(err).Error("Request error")

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error":      e.Message,
			"code":       "FIBER_ERROR",
			"status":     e.Code,
			"request_id": requestID(c),
		})
	}

	var e *errx.Error
	if errx.As(err, &e) {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse(requestID(c)))
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":      "Internal Server Error",
		"type":       "INTERNAL",
		"code":       "INTERNAL_ERROR",
		"message":    "An unexpected error occurred",
		"request_id": requestID(c),
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

// printRouteSummary prints a summary of registered routes
func printRouteSummary() {
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Info: GET /, GET /health, GET /email-types")
	logx.Info("   ├─ Generate: POST /generate-email, POST /generate-emails")
	logx.Info("   └─ Deliver: POST /send-email")
}

// startServer starts the server with graceful shutdown
func startServer(app *fiber.App, cfg config.ServerConfig) {
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on port %s (version %s)", cfg.Port, cfg.Version)
		logx.Infof("💚 Health Check: http://localhost:%s/health", cfg.Port)
		logx.Info(strings.Repeat("=", 61))

		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app, cfg)
}

// gracefulShutdown handles graceful server shutdown
func gracefulShutdown(app *fiber.App, cfg config.ServerConfig) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
