package domain

var (
	MessageSuccessUploadReview = "review uploaded successfully"
	MessageSuccessEditReview   = "review updated successfully"
	MessageSuccessDeleteReview = "review deleted successfully"

	MessageFailedUploadReview = "failed to upload review"
	MessageFailedEditReview   = "failed to update review"
	MessageFailedDeleteReview = "failed to delete review"

	ErrReviewNotFound           = NewError(ErrNotFound, "review not found")
	ErrUnauthorizedReviewAccess = NewError(ErrForbidden, "you do not have permission to modify this review")
	ErrReviewExists             = NewError(ErrConflict, "you have already reviewed this recipe")
	ErrInvalidRating            = NewFieldError(ErrValidation, "rating", "rating must be between 1 and 5")
)

type (
	CreateReviewRequest struct {
		RecipeID string `json:"recipe" validate:"required,uuid"`
		Rating   int    `json:"rating" validate:"min=1,max=5"`
		Comment  string `json:"comment" validate:"required,notblank"`
	}

	// UpdateReviewRequest is a patch over rating and comment only.
	UpdateReviewRequest struct {
		Rating  *int    `json:"rating" validate:"omitnil,min=1,max=5"`
		Comment *string `json:"comment" validate:"omitnil,notblank"`
	}

	ReviewResponse struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		RecipeID   string `json:"recipe"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
		ReviewDate string `json:"review_date"`
	}
)
