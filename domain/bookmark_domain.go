package domain

var (
	MessageSuccessBookmark       = "recipe bookmarked successfully"
	MessageSuccessRemoveBookmark = "bookmark removed successfully"

	MessageFailedBookmark       = "failed to bookmark recipe"
	MessageFailedRemoveBookmark = "failed to remove bookmark"

	ErrBookmarkExists   = NewError(ErrConflict, "recipe is already bookmarked")
	ErrBookmarkNotFound = NewError(ErrNotFound, "bookmark not found")
)

type (
	BookmarkRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	BookmarkResponse struct {
		ID           string `json:"id"`
		RecipeID     string `json:"recipe_id"`
		BookmarkDate string `json:"bookmark_date"`
	}
)
