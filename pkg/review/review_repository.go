package review

import (
	"context"
	"errors"

	"recipehub/domain"
	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	ReviewRepository interface {
		CreateReview(ctx context.Context, review *entities.Review) error
		GetReviewByID(ctx context.Context, id string) (*entities.Review, error)
		IsRecipeReviewed(ctx context.Context, userID, recipeID string) (bool, error)
		UpdateReview(ctx context.Context, review *entities.Review) error
		DeleteReview(ctx context.Context, id string) error
	}

	reviewRepository struct {
		db *gorm.DB
	}
)

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id string) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) IsRecipeReviewed(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Review{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateReview writes rating and comment only; the BeforeSave hook still runs.
func (r *reviewRepository) UpdateReview(ctx context.Context, review *entities.Review) error {
	return r.db.WithContext(ctx).
		Model(review).
		Select("rating", "comment", "updated_at").
		Updates(review).Error
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}
