// Posdesk Core - POS back office server.
//
// It serves the staff and catalog REST API, authorises admin operations
// by PIN, pushes committed change events to register terminals over
// WebSocket, and advertises itself on the local network via mDNS.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/posdesk/core/migrations"

	"github.com/posdesk/core/internal/api"
	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/discovery"
	"github.com/posdesk/core/internal/ident"
	"github.com/posdesk/core/internal/infrastructure/config"
	"github.com/posdesk/core/internal/infrastructure/database"
	"github.com/posdesk/core/internal/infrastructure/logging"
	"github.com/posdesk/core/internal/infrastructure/mqtt"
	"github.com/posdesk/core/internal/staff"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main so failures
// flow back as errors and exit codes stay consistent.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting posdesk core", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	staffRepo := staff.NewSQLiteRepository(db.DB)
	catalogRepo := catalog.NewSQLiteRepository(db.DB)
	allocator := ident.NewAllocator(db.DB)

	// First-boot seeding: default admin, optional sample catalog.
	admin, err := staff.SeedAdmin(ctx, staffRepo, allocator, cfg.Seed.AdminPIN)
	if err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}
	if admin != nil {
		log.Info("seeded default admin account", "staff_id", admin.ID)
	}
	if cfg.Seed.SampleCatalog {
		if err := catalog.SeedSampleCatalog(ctx, catalogRepo, allocator); err != nil {
			return fmt.Errorf("seeding sample catalog: %w", err)
		}
	}

	// Optional MQTT event relay. A broker outage at boot is not fatal:
	// the back office is fully functional without the relay.
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			log.Warn("mqtt relay unavailable, continuing without it", "error", err)
		} else {
			defer func() {
				log.Info("disconnecting from MQTT")
				mqttClient.Close()
			}()
			log.Info("MQTT relay connected",
				"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
				"client_id", cfg.MQTT.Broker.ClientID,
			)
		}
	}

	server, err := api.New(api.Deps{
		Config:      cfg.Server,
		WS:          cfg.WebSocket,
		Logger:      log,
		StaffRepo:   staffRepo,
		CatalogRepo: catalogRepo,
		Alloc:       allocator,
		MQTT:        mqttClient,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// mDNS advertisement so terminals find the server automatically.
	if cfg.Discovery.Enabled {
		advertiser := discovery.NewServer(cfg.Discovery.Instance, cfg.Server.Port, version, log)
		if err := advertiser.Start(); err != nil {
			log.Warn("mdns advertisement failed, continuing without it", "error", err)
		} else {
			defer advertiser.Stop()
		}
	}

	log.Info("posdesk core running",
		"address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
	)

	// Block until a shutdown signal arrives.
	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}

// getConfigPath returns the config file path from POSDESK_CONFIG or the
// default location.
func getConfigPath() string {
	if path := os.Getenv("POSDESK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
