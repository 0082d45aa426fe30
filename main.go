package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/condo-marketplace/domain/ident"
	"github.com/example/condo-marketplace/modules/activity"
	"github.com/example/condo-marketplace/modules/api"
	"github.com/example/condo-marketplace/modules/cache"
	"github.com/example/condo-marketplace/modules/marketplace"
	"github.com/example/condo-marketplace/modules/snapshot"
	"github.com/example/condo-marketplace/store"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := loadConfig()

	log.Println("=== Condo Marketplace ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Snapshot DB: %s (seed: %t)", cfg.SnapshotDBPath, cfg.SnapshotSeed)

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if cfg.RedisAddr != "" {
		if err := app.RegisterPlugin(cache.NewPluginModule(cfg.RedisAddr, cfg.CacheTTL), "cache"); err != nil {
			log.Fatalf("Failed to register cache plugin: %v", err)
		}
		log.Printf("Cache: redis at %s (TTL %s)", cfg.RedisAddr, cfg.CacheTTL)
	} else {
		log.Println("Cache: disabled (set REDIS_ADDR to enable)")
	}

	newID, err := ident.NewNanoID()
	if err != nil {
		log.Fatalf("Failed to create id generator: %v", err)
	}

	// The store is created here and handed to the only module that mutates it.
	app.Register(marketplace.NewModule(store.New(), newID))    // owns the store, emits events
	app.Register(activity.NewModule(activity.DefaultCapacity)) // consumes marketplace events
	app.Register(snapshot.NewModule(cfg.SnapshotDBPath, cfg.SnapshotSeed, cfg.SnapshotDebug))
	app.Register(api.NewModule(api.Config{
		Port:           cfg.HTTPPort,
		AllowedOrigins: cfg.AllowedOrigins,
	}))

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(cfg.HTTPPort)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("=== Application Started ===")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  GET    /health                              - Health check")
	log.Println("  GET    /api/v1/state                        - Full store state")
	log.Println("  GET    /api/v1/categories                   - Category filter entries")
	log.Println("  GET    /api/v1/products?category=&search=   - Visible products")
	log.Println("  POST   /api/v1/products                     - List a product")
	log.Println("  DELETE /api/v1/products/:id                 - Remove a product")
	log.Println("  POST   /api/v1/products/:id/reserve         - Reserve a product")
	log.Println("  POST   /api/v1/products/:id/complete        - Complete a reserved product")
	log.Println("  GET    /api/v1/residents?search=            - Residents")
	log.Println("  POST   /api/v1/residents                    - Register a resident")
	log.Println("  POST   /api/v1/residents/:id/deactivate     - Deactivate a resident")
	log.Println("  PUT    /api/v1/filters/category             - Set the selected category")
	log.Println("  PUT    /api/v1/filters/search               - Set the search term")
	log.Println("  DELETE /api/v1/filters                      - Reset category and search")
	log.Println("  GET    /api/v1/stats                        - Dashboard counters")
	log.Println("  GET    /api/v1/activity?limit=              - Activity feed")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
