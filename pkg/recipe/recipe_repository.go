package recipe

import (
	"context"
	"errors"
	"time"

	"recipehub/domain"
	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeByIDAndUserID(ctx context.Context, id string, userID string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		ListRecipes(ctx context.Context, query RecipeQuery) ([]RecipeListing, error)
		GetRecipeListing(ctx context.Context, viewerID string, recipeID string) (*RecipeListing, error)
		ListRecipeReviews(ctx context.Context, recipeID string) ([]entities.Review, error)
		CountUploadsOnDate(ctx context.Context, userID string, date time.Time) (int64, error)
		ExistsByTitle(ctx context.Context, title string) (bool, error)
	}

	// RecipeQuery selects rows for one of the listing views. ViewerID is
	// always required; it scopes the bookmark flag.
	RecipeQuery struct {
		ViewerID       string
		OwnerID        string
		BookmarkedOnly bool
		RecipeID       string
		Offset         int
		Limit          int
	}

	// RecipeListing is a recipe row annotated for one viewer.
	RecipeListing struct {
		entities.Recipe
		AuthorUsername string
		IsBookmarked   bool
		AverageRating  float64
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

const (
	selectListing = "recipes.*, users.username AS author_username, " +
		"COALESCE((SELECT AVG(reviews.rating) FROM reviews WHERE reviews.recipe_id = recipes.id), 0)::float8 AS average_rating"
	selectIsBookmarked = "EXISTS(SELECT 1 FROM bookmarks WHERE bookmarks.recipe_id = recipes.id AND bookmarks.user_id = ?) AS is_bookmarked"
	selectBookmarked   = "TRUE AS is_bookmarked"
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeByIDAndUserID finds a recipe only among those owned by userID.
func (r *recipeRepository) GetRecipeByIDAndUserID(ctx context.Context, id string, userID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// ListRecipes returns annotated recipes in a single statement, newest upload first.
func (r *recipeRepository) ListRecipes(ctx context.Context, query RecipeQuery) ([]RecipeListing, error) {
	tx := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN users ON users.id = recipes.user_id")

	if query.BookmarkedOnly {
		tx = tx.Select(selectListing+", "+selectBookmarked).
			Joins("JOIN bookmarks ON bookmarks.recipe_id = recipes.id AND bookmarks.user_id = ?", query.ViewerID)
	} else {
		tx = tx.Select(selectListing+", "+selectIsBookmarked, query.ViewerID)
	}

	if query.OwnerID != "" {
		tx = tx.Where("recipes.user_id = ?", query.OwnerID)
	}
	if query.RecipeID != "" {
		tx = tx.Where("recipes.id = ?", query.RecipeID)
	}
	if query.Limit > 0 {
		tx = tx.Offset(query.Offset).Limit(query.Limit)
	}

	var listings []RecipeListing
	if err := tx.
		Order("recipes.upload_date DESC").
		Order("recipes.created_at DESC").
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *recipeRepository) GetRecipeListing(ctx context.Context, viewerID string, recipeID string) (*RecipeListing, error) {
	listings, err := r.ListRecipes(ctx, RecipeQuery{ViewerID: viewerID, RecipeID: recipeID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	return &listings[0], nil
}

// ListRecipeReviews returns every review of the recipe with its author, newest first.
func (r *recipeRepository) ListRecipeReviews(ctx context.Context, recipeID string) ([]entities.Review, error) {
	var reviews []entities.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("review_date DESC").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *recipeRepository) CountUploadsOnDate(ctx context.Context, userID string, date time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ? AND upload_date = ?", userID, date.Format(domain.DateFormat)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
