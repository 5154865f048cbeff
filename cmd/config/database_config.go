package config

import (
	"fmt"

	"recipehub/internal/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the postgres pool. The session runs in UTC so DATE
// columns compare against calendar-day strings without shifting.
func ConnectDB() (*gorm.DB, error) {
	sslMode := utils.GetConfig("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
		sslMode,
	)

	logLevel := gormlogger.Warn
	if utils.GetConfig("APP_ENV") == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return nil, err
	}
	return db, nil
}
