package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a config file")
		status     = flag.Bool("status", false, "Show which catalog tables exist")
	)
	flag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Service, cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// NewDB migrates the schema while connecting
	db, cleanup, err := gormrepo.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	defer cleanup()

	if !*status {
		log.Info("migrations completed successfully", zap.String("driver", cfg.Database.Driver))
		return
	}

	for _, model := range gormrepo.Models() {
		stmt := db.Model(model).Statement
		if err := stmt.Parse(model); err != nil {
			log.Error("failed to parse model", zap.Error(err))
			continue
		}
		table := stmt.Schema.Table
		fmt.Printf("%-28s %v\n", table, db.Migrator().HasTable(table))
	}
}
