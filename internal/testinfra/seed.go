package testinfra

import (
	"testing"
	"time"

	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()

	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		RegDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func SeedRecipe(t *testing.T, db *gorm.DB, owner *entities.User, title string, uploadDate time.Time) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       owner.ID,
		Title:        title,
		Description:  title + " description",
		Ingredients:  datatypes.JSONSlice[string]{"1 egg"},
		Instructions: datatypes.JSONSlice[string]{"cook"},
		PrepTime:     "00:10:00",
		CookTime:     "00:20:00",
		UploadDate:   uploadDate,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("seed recipe %s: %v", title, err)
	}
	return recipe
}

func SeedReview(t *testing.T, db *gorm.DB, author *entities.User, recipe *entities.Recipe, rating int) *entities.Review {
	t.Helper()

	review := &entities.Review{
		ID:         uuid.New(),
		UserID:     author.ID,
		RecipeID:   recipe.ID,
		Rating:     rating,
		ReviewDate: recipe.UploadDate,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return review
}

func SeedBookmark(t *testing.T, db *gorm.DB, user *entities.User, recipe *entities.Recipe) *entities.Bookmark {
	t.Helper()

	bookmark := &entities.Bookmark{
		ID:           uuid.New(),
		UserID:       user.ID,
		RecipeID:     recipe.ID,
		BookmarkDate: recipe.UploadDate,
	}
	if err := db.Create(bookmark).Error; err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	return bookmark
}
