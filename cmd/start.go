package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"item-simulator/core/config"
	"item-simulator/core/database"
	"item-simulator/core/loader"
	"item-simulator/core/logger"
	"item-simulator/core/middleware/auth"
	"item-simulator/core/middleware/rayid"
	"item-simulator/core/storage"

	"item-simulator/feature/assets"
	"item-simulator/feature/audit"
	"item-simulator/feature/character"
	"item-simulator/feature/inventory"
	"item-simulator/feature/item"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "item-simulator/docs/swagger"
)

// @title Item Simulator API
// @version 1.0
// @description Game backend API for characters, items and the ownership transition engine.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the item simulator server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		// Unlike the asset bucket, the game store is mandatory: every
		// feature except assets is backed by it.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to game database", zap.String("driver", cfg.Database.Driver))

		if !cfg.Server.RequiresAuth() {
			logg.Fatal("server.jwt_secret is not set; refusing to start without token verification")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 5. Initialize Storage (optional, assets feature only)
		var store storage.Client
		if s, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed, assets feature disabled", zap.Error(err))
		} else {
			store = s
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(character.NewFeature(db, logg))
		mgr.Register(item.NewFeature(db, logg))
		mgr.Register(inventory.NewFeature(db, logg))
		mgr.Register(audit.NewFeature(db, logg))
		mgr.Register(assets.NewFeature(store, cfg.Storage.Bucket, logg))

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Token resolution. Optional mode: reads stay public and owner-only
		// fields are tailored by handler; handlers that mutate reject
		// unauthenticated callers themselves.
		app.Use(auth.New(auth.Config{
			Secret:   cfg.Server.JwtSecret,
			DB:       db,
			Optional: true,
		}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
