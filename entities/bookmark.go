package entities

import (
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_recipe" json:"user_id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_user_recipe" json:"recipe_id"`
	BookmarkDate time.Time `gorm:"type:date;not null" json:"bookmark_date"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}
