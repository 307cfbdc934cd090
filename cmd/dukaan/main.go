package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"dukaan/internal/config"
	"dukaan/internal/http/handlers"
	applog "dukaan/internal/log"
	"dukaan/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	// Fail fast: no serving without a reachable store.
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Full detail server-side, opaque message to the client.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	auth.Post("/forgot-password", deps.AuthHandler.ForgotPassword)
	auth.Post("/reset-password", deps.AuthHandler.ResetPassword)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/categories", deps.ProductHandler.Categories)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Post("/", handlers.RequireAdmin(deps.Tokens), deps.ProductHandler.Create)
	products.Put("/:id", handlers.RequireAdmin(deps.Tokens), deps.ProductHandler.Update)
	products.Delete("/:id", handlers.RequireAdmin(deps.Tokens), deps.ProductHandler.Delete)

	orders := api.Group("/orders")
	orders.Post("/", deps.OrderHandler.Place)
	orders.Get("/", handlers.RequireUser(deps.Tokens), deps.OrderHandler.History)

	admin := api.Group("/admin", handlers.RequireAdmin(deps.Tokens))
	admin.Get("/stats", deps.AdminHandler.Stats)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Put("/orders/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Post("/categories/rename", deps.AdminHandler.RenameCategory)
	admin.Post("/categories/delete", deps.AdminHandler.DeleteCategory)
	admin.Get("/users", deps.AdminHandler.Users)
	admin.Put("/users/:id", deps.AdminHandler.UpdateUser)
	admin.Delete("/users/:id", deps.AdminHandler.DeleteUser)
	admin.Get("/settings", deps.AdminHandler.GetSettings)
	admin.Put("/settings", deps.AdminHandler.UpdateSettings)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
