package main

import (
	"flag"
	"fmt"
	"log"

	"reflexo_app_go/config"
	"reflexo_app_go/db"
	"reflexo_app_go/logger"
	"reflexo_app_go/models"
	"reflexo_app_go/services"

	"go.uber.org/zap"
)

// Loads the bundled Peru location hierarchy. Safe to run repeatedly.
func main() {
	stats := flag.Bool("stats", false, "print location counts after seeding")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	flush, err := logger.Init(cfg.LogLevel, cfg.LogFormat, "seed-locations")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer flush()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(models.All()...); err != nil {
		zap.L().Fatal("failed to run migrations", zap.Error(err))
	}

	if err := services.SeedLocations(db.DB); err != nil {
		zap.L().Fatal("failed to seed locations", zap.Error(err))
	}
	zap.L().Info("locations seeded")

	if *stats {
		s, err := services.GetLocationStats(db.DB)
		if err != nil {
			zap.L().Fatal("failed to count locations", zap.Error(err))
		}
		fmt.Printf("Countries: %d\nRegions:   %d\nProvinces: %d\nDistricts: %d\n",
			s.TotalCountries, s.TotalRegions, s.TotalProvinces, s.TotalDistricts)
	}
}
