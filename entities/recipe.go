package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Recipe struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID                   `gorm:"type:uuid;not null;index:idx_recipe_user_upload_date,priority:1;<-:create" json:"user_id"`
	Title        string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Ingredients  datatypes.JSONSlice[string] `gorm:"not null" json:"ingredients"`
	Instructions datatypes.JSONSlice[string] `gorm:"not null" json:"instructions"`
	Cuisine      string                      `gorm:"type:varchar(255)" json:"cuisine"`
	Course       string                      `gorm:"type:varchar(255)" json:"course"`
	Diet         string                      `gorm:"type:varchar(255)" json:"diet"`
	PrepTime     string                      `gorm:"type:varchar(8);not null" json:"prep_time"`
	CookTime     string                      `gorm:"type:varchar(8);not null" json:"cook_time"`
	UploadDate   time.Time                   `gorm:"type:date;not null;index:idx_recipe_user_upload_date,priority:2;<-:create" json:"upload_date"`
	Image        string                      `gorm:"type:varchar(255)" json:"image"`
	VideoLink    string                      `gorm:"type:varchar(255)" json:"video_link"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Timestamp
}
