package domain

import (
	"mime/multipart"
)

// MaxDailyRecipeUploads caps recipe creation per user per calendar day.
const MaxDailyRecipeUploads = 3

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessUploadRecipe    = "recipe uploaded successfully"
	MessageSuccessEditRecipe      = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedUploadRecipe    = "failed to upload recipe"
	MessageFailedEditRecipe      = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload image"

	ErrRecipeNotFound           = NewError(ErrNotFound, "recipe not found")
	ErrUnauthorizedRecipeAccess = NewError(ErrForbidden, "you do not have permission to edit this recipe")
	ErrDailyUploadLimit         = NewError(ErrConflict, "you can only upload 3 recipes per day")
)

type (
	UploadRecipeRequest struct {
		Title        string   `json:"title" validate:"required,notblank,max=255"`
		Description  string   `json:"description" validate:"required,notblank"`
		Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,notblank"`
		Instructions []string `json:"instructions" validate:"required,min=1,dive,notblank"`
		Cuisine      string   `json:"cuisine" validate:"max=255"`
		Course       string   `json:"course" validate:"max=255"`
		Diet         string   `json:"diet" validate:"max=255"`
		PrepTime     string   `json:"prep_time" validate:"required,clock"`
		CookTime     string   `json:"cook_time" validate:"required,clock"`
		Image        string   `json:"image" validate:"required,max=255"`
		VideoLink    string   `json:"video_link" validate:"omitempty,weblink,max=255"`
	}

	// UpdateRecipeRequest is a patch: nil fields and empty lists are left untouched.
	UpdateRecipeRequest struct {
		Title        *string  `json:"title" validate:"omitnil,notblank,max=255"`
		Description  *string  `json:"description" validate:"omitnil,notblank"`
		Ingredients  []string `json:"ingredients" validate:"omitempty,dive,notblank"`
		Instructions []string `json:"instructions" validate:"omitempty,dive,notblank"`
		Cuisine      *string  `json:"cuisine" validate:"omitnil,max=255"`
		Course       *string  `json:"course" validate:"omitnil,max=255"`
		Diet         *string  `json:"diet" validate:"omitnil,max=255"`
		PrepTime     *string  `json:"prep_time" validate:"omitnil,clock"`
		CookTime     *string  `json:"cook_time" validate:"omitnil,clock"`
		Image        *string  `json:"image" validate:"omitnil,max=255"`
		VideoLink    *string  `json:"video_link" validate:"omitnil,weblink,max=255"`
	}

	UploadImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadImageResponse struct {
		Image string `json:"image"`
	}

	RecipeSummary struct {
		RecipeID      string   `json:"recipe_id"`
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Tags          []string `json:"tags"`
		Time          int      `json:"time"`
		UploadDate    string   `json:"upload_date"`
		Author        string   `json:"author"`
		Image         string   `json:"image"`
		IsBookmarked  bool     `json:"is_bookmarked"`
		AverageRating float64  `json:"average_rating"`
	}

	RecipeDetail struct {
		RecipeSummary
		Ingredients  []string         `json:"ingredients"`
		Instructions []string         `json:"instructions"`
		PrepTime     string           `json:"prep_time"`
		CookTime     string           `json:"cook_time"`
		Cuisine      string           `json:"cuisine"`
		Course       string           `json:"course"`
		Diet         string           `json:"diet"`
		VideoLink    string           `json:"video_link"`
		IsOwner      bool             `json:"is_owner"`
		YourReview   *ReviewResponse  `json:"your_review,omitempty"`
		Reviews      []ReviewResponse `json:"reviews"`
	}

	RecipeResponse struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
		Cuisine      string   `json:"cuisine"`
		Course       string   `json:"course"`
		Diet         string   `json:"diet"`
		PrepTime     string   `json:"prep_time"`
		CookTime     string   `json:"cook_time"`
		UploadDate   string   `json:"upload_date"`
		Image        string   `json:"image"`
		VideoLink    string   `json:"video_link"`
	}
)
