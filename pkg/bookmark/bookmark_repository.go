package bookmark

import (
	"context"

	"recipehub/domain"
	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	BookmarkRepository interface {
		CreateBookmark(ctx context.Context, bookmark *entities.Bookmark) error
		IsRecipeBookmarked(ctx context.Context, userID, recipeID string) (bool, error)
		RemoveBookmark(ctx context.Context, userID, recipeID string) error
	}

	bookmarkRepository struct {
		db *gorm.DB
	}
)

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) CreateBookmark(ctx context.Context, bookmark *entities.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *bookmarkRepository) IsRecipeBookmarked(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Bookmark{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveBookmark deletes the caller's bookmark of recipeID.
func (r *bookmarkRepository) RemoveBookmark(ctx context.Context, userID, recipeID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}
