package entities

import (
	"time"

	"recipehub/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_recipe;<-:create" json:"user_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_recipe;<-:create" json:"recipe_id"`
	Rating     int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	ReviewDate time.Time `gorm:"type:date;not null;<-:create" json:"review_date"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}

// BeforeSave rejects out-of-range ratings before they reach the database check.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return domain.ErrInvalidRating
	}
	return nil
}
