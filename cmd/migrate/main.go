package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/logger"
	"github.com/Domenick1991/airbooking/internal/migrate"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before migrating")
	flag.Parse()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.NewLogger().Fatal("MIGRATE", fmt.Sprintf("load config: %v", err))
	}
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))

	db, err := migrate.Open(cfg.Database.DSN())
	if err != nil {
		log.Fatal("MIGRATE", fmt.Sprintf("open database: %v", err))
	}
	defer func() {
		if err := migrate.Close(db); err != nil {
			log.Errorf("MIGRATE", "close database: %v", err)
		}
	}()

	if *reset {
		log.Warn("MIGRATE", "dropping all tables")
		if err := migrate.Reset(db); err != nil {
			log.Fatal("MIGRATE", fmt.Sprintf("reset: %v", err))
		}
	}
	if err := migrate.Run(db, log); err != nil {
		log.Fatal("MIGRATE", fmt.Sprintf("migrate: %v", err))
	}
}
