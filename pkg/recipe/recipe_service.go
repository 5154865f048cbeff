package recipe

import (
	"context"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/metrics"
	"recipehub/internal/utils"
	"recipehub/internal/utils/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type (
	RecipeService interface {
		GetCatalog(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error)
		GetUploadedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error)
		GetBookmarkedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		UploadRecipe(ctx context.Context, req domain.UploadRecipeRequest, userID string) (domain.RecipeResponse, error)
		EditRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		UploadImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.UploadImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
		now              func() time.Time
		location         *time.Location
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3, location *time.Location) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
		now:              time.Now,
		location:         location,
	}
}

// ParseID validates a path id; malformed ids cannot name a stored row.
func ParseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

func (s *recipeService) list(ctx context.Context, query RecipeQuery, page domain.PaginationRequest) ([]domain.RecipeSummary, error) {
	if page.Limit > 0 {
		query.Offset = page.Offset()
		query.Limit = page.Limit
	}
	listings, err := s.recipeRepository.ListRecipes(ctx, query)
	if err != nil {
		return nil, err
	}
	return ToRecipeSummaries(listings), nil
}

func (s *recipeService) GetCatalog(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error) {
	return s.list(ctx, RecipeQuery{ViewerID: userID}, page)
}

func (s *recipeService) GetUploadedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error) {
	return s.list(ctx, RecipeQuery{ViewerID: userID, OwnerID: userID}, page)
}

func (s *recipeService) GetBookmarkedRecipes(ctx context.Context, page domain.PaginationRequest, userID string) ([]domain.RecipeSummary, error) {
	return s.list(ctx, RecipeQuery{ViewerID: userID, BookmarkedOnly: true}, page)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	id, err := ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	listing, err := s.recipeRepository.GetRecipeListing(ctx, userID, id.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	reviews, err := s.recipeRepository.ListRecipeReviews(ctx, id.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return ToRecipeDetail(*listing, reviews, userID), nil
}

func (s *recipeService) UploadRecipe(ctx context.Context, req domain.UploadRecipeRequest, userID string) (domain.RecipeResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	today := utils.CalendarDate(s.now(), s.location)
	count, err := s.recipeRepository.CountUploadsOnDate(ctx, userID, today)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if count >= domain.MaxDailyRecipeUploads {
		return domain.RecipeResponse{}, domain.ErrDailyUploadLimit
	}

	recipe := entities.Recipe{
		ID:           uuid.New(),
		UserID:       ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  datatypes.JSONSlice[string](req.Ingredients),
		Instructions: datatypes.JSONSlice[string](req.Instructions),
		Cuisine:      req.Cuisine,
		Course:       req.Course,
		Diet:         req.Diet,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		UploadDate:   today,
		Image:        req.Image,
		VideoLink:    req.VideoLink,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	metrics.RecipesUploaded.Inc()

	return ToRecipeResponse(recipe), nil
}

// EditRecipe looks the recipe up globally, so a foreign recipe is reported
// as forbidden rather than missing.
func (s *recipeService) EditRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	id, err := ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id.String())
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if recipe.UserID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	applyRecipePatch(recipe, req)

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}
	return ToRecipeResponse(*recipe), nil
}

func applyRecipePatch(recipe *entities.Recipe, req domain.UpdateRecipeRequest) {
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if len(req.Ingredients) > 0 {
		recipe.Ingredients = datatypes.JSONSlice[string](req.Ingredients)
	}
	if len(req.Instructions) > 0 {
		recipe.Instructions = datatypes.JSONSlice[string](req.Instructions)
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Course != nil {
		recipe.Course = *req.Course
	}
	if req.Diet != nil {
		recipe.Diet = *req.Diet
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.VideoLink != nil {
		recipe.VideoLink = *req.VideoLink
	}
}

// DeleteRecipe only sees the caller's own recipes, so a foreign recipe is
// reported as missing.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	id, err := ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return err
	}

	recipe, err := s.recipeRepository.GetRecipeByIDAndUserID(ctx, id.String(), userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID.String()); err != nil {
		return err
	}

	if key := s.s3.GetObjectKeyFromLink(recipe.Image); key != "" {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete recipe image")
		}
	}
	return nil
}

func (s *recipeService) UploadImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.UploadImageResponse, error) {
	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), req.Image, "recipes", storage.AllowImage...)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}
	log.Debug().Str("user_id", userID).Str("key", objectKey).Msg("recipe image uploaded")
	return domain.UploadImageResponse{Image: s.s3.GetPublicLinkKey(objectKey)}, nil
}
