package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/SifatU360/SwiftCart/internal/cart"
	"github.com/SifatU360/SwiftCart/internal/catalog"
	"github.com/SifatU360/SwiftCart/internal/httpapi"
	"github.com/SifatU360/SwiftCart/internal/storage"
)

func main() {
	// Configuration
	httpPort := getEnv("HTTP_PORT", "8080")
	catalogBaseURL := getEnv("CATALOG_BASE_URL", catalog.DefaultBaseURL)
	catalogTimeout := 10 * time.Second
	requestTimeout := 30 * time.Second
	storageBackend := getEnv("CART_STORAGE", "file")
	cartFilePath := getEnv("CART_FILE", "swiftcart-cart.json")
	cartDBPath := getEnv("CART_DB_PATH", "swiftcart.db")
	migrationsPath := getEnv("MIGRATIONS_PATH", "migrations")

	log.SetFormatter(&log.JSONFormatter{})

	client := catalog.NewClient(catalogBaseURL, catalogTimeout)
	cache := catalog.NewCache()

	var slot storage.Slot
	switch storageBackend {
	case "sqlite":
		sqlSlot, err := storage.NewSQLiteSlot(cartDBPath, storage.SlotName)
		if err != nil {
			log.Fatalf("Failed to open cart database: %v", err)
		}
		defer sqlSlot.Close()

		if err := sqlSlot.RunMigrations(migrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slot = sqlSlot
		log.Infof("Cart persisted to sqlite at %s", cartDBPath)
	case "file":
		slot = storage.NewFileSlot(cartFilePath)
		log.Infof("Cart persisted to file at %s", cartFilePath)
	default:
		log.Fatalf("Unknown CART_STORAGE backend %q", storageBackend)
	}

	// Hydrate before any user interaction is served.
	store := cart.NewStore(cache, slot)
	store.Hydrate(context.Background())
	sum := store.Summary()
	log.WithFields(log.Fields{
		"items": sum.ItemCount,
		"total": sum.Total.StringFixed(2),
	}).Info("cart hydrated")

	catalogHandler := httpapi.NewCatalogHandler(client, cache, catalogTimeout)
	cartHandler := httpapi.NewCartHandler(store, catalogTimeout)
	router := httpapi.NewRouter(catalogHandler, cartHandler, requestTimeout)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", httpPort),
		Handler: router,
	}

	go func() {
		log.Infof("Storefront listening on port %s", httpPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down storefront...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	log.Info("Storefront stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
