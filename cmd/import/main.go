package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"recipehub/cmd/config"
	"recipehub/internal/utils"
	"recipehub/internal/utils/logger"
	"recipehub/pkg/importer"
	"recipehub/pkg/recipe"
	"recipehub/pkg/user"

	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("file", "", "CSV file to import")
	startRow := flag.Int("start-row", 0, "0-based data row to resume from")
	flag.Parse()

	if err := utils.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))

	if *path == "" {
		log.Fatal().Msg("-file is required")
	}

	file, err := os.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to open csv")
	}
	defer file.Close()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	im := importer.NewImporter(
		user.NewUserRepository(db),
		recipe.NewRecipeRepository(db),
		utils.LoadLocation(utils.GetConfig("APP_TIMEZONE")),
	)
	summary, err := im.Run(ctx, file, importer.Options{StartRow: *startRow})

	for _, rowErr := range summary.Errors {
		log.Warn().Int("row", rowErr.Row).Err(rowErr.Err).Msg("row failed")
	}
	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
	}
	event.
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("next_start_row", summary.LastRow).
		Msg("import finished")

	if err != nil {
		stop()
		os.Exit(1)
	}
}
