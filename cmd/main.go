package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipehub/cmd/config"
	migration "recipehub/cmd/database/migrate"
	"recipehub/internal/utils"
	"recipehub/internal/utils/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	if err := utils.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if *migrate || *migrateOnly {
		if err := migration.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		if *migrateOnly {
			return
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	go func() {
		addr := ":" + utils.GetConfig("APP_PORT")
		log.Info().Str("addr", addr).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
