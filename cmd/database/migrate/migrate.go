package migration

import (
	"recipehub/entities"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return err
	}

	// users first: every other table references it
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"recipe", &entities.Recipe{}},
		{"review", &entities.Review{}},
		{"bookmark", &entities.Bookmark{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Error().Err(err).Msgf("error migrating %s table", m.name)
			return err
		}
	}

	log.Info().Msg("database migration complete")
	return nil
}
