/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the benefits paycheck engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env file, environment, then flags)
  2. Initialize SQLite store
  3. Seed a demo scenario into an empty database
  4. Create API handler and router
  5. Start the pay run scheduler if enabled
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides BENEFITS_PORT)
  -db      SQLite database path (overrides BENEFITS_DB_PATH)
           Use ":memory:" for in-memory database
  -seed    Scenario to seed into an empty database, or "none"
           (overrides BENEFITS_SEED_SCENARIO)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the pay run scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

EXAMPLES:
  # Run with file database
  ./server -db="./data/benefits.db"

  # Run with in-memory database, no demo data
  ./server -db=":memory:" -seed=none

  # Scheduled pay runs every hour
  BENEFITS_PAYRUN_ENABLED=true BENEFITS_PAYRUN_INTERVAL=1h ./server

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/benefits-engine/api"
	"github.com/warp/benefits-engine/config"
	"github.com/warp/benefits-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	seed := flag.String("seed", cfg.SeedScenario, `Scenario to seed into an empty database, or "none"`)
	flag.Parse()
	cfg.Port, cfg.DBPath, cfg.SeedScenario = *port, *dbPath, *seed
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store)

	if cfg.SeedEnabled() {
		if err := seedIfEmpty(context.Background(), store, handler, cfg.SeedScenario); err != nil {
			log.Printf("Warning: Failed to seed scenario %q: %v", cfg.SeedScenario, err)
		}
	}

	// Pay run scheduler
	handler.Payruns.Enabled = cfg.PayrunEnabled
	handler.Payruns.Interval = cfg.PayrunInterval
	handler.Payruns.Start()
	defer handler.Payruns.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler, cfg.AllowedOrigins...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		log.Printf("API available at http://localhost:%d/api/v1", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	handler.Payruns.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server stopped")
}

// seedIfEmpty loads the scenario only when the database has no employees,
// so restarting the server never wipes stored data.
func seedIfEmpty(ctx context.Context, store *sqlite.Store, handler *api.Handler, scenario string) error {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return err
	}
	if len(employees) > 0 {
		log.Printf("Database has %d employees, skipping seed", len(employees))
		return nil
	}
	return handler.LoadScenarioByID(ctx, scenario)
}
