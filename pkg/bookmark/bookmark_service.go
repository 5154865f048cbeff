package bookmark

import (
	"context"
	"errors"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/utils"
	"recipehub/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BookmarkService interface {
		BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) (domain.BookmarkResponse, error)
		RemoveBookmark(ctx context.Context, recipeID string, userID string) error
	}

	bookmarkService struct {
		bookmarkRepository BookmarkRepository
		recipeRepository   recipe.RecipeRepository
		now                func() time.Time
		location           *time.Location
	}
)

func NewBookmarkService(bookmarkRepository BookmarkRepository, recipeRepository recipe.RecipeRepository, location *time.Location) BookmarkService {
	return &bookmarkService{
		bookmarkRepository: bookmarkRepository,
		recipeRepository:   recipeRepository,
		now:                time.Now,
		location:           location,
	}
}

func (s *bookmarkService) BookmarkRecipe(ctx context.Context, req domain.BookmarkRecipeRequest, userID string) (domain.BookmarkResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.BookmarkResponse{}, domain.ErrParseUUID
	}
	recipeID, err := recipe.ParseID(req.RecipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.BookmarkResponse{}, err
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID.String()); err != nil {
		return domain.BookmarkResponse{}, err
	}

	bookmarked, err := s.bookmarkRepository.IsRecipeBookmarked(ctx, userID, recipeID.String())
	if err != nil {
		return domain.BookmarkResponse{}, err
	}
	if bookmarked {
		return domain.BookmarkResponse{}, domain.ErrBookmarkExists
	}

	bookmark := entities.Bookmark{
		ID:           uuid.New(),
		UserID:       ownerID,
		RecipeID:     recipeID,
		BookmarkDate: utils.CalendarDate(s.now(), s.location),
	}
	if err := s.bookmarkRepository.CreateBookmark(ctx, &bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.BookmarkResponse{}, domain.ErrBookmarkExists
		}
		return domain.BookmarkResponse{}, err
	}

	return domain.BookmarkResponse{
		ID:           bookmark.ID.String(),
		RecipeID:     bookmark.RecipeID.String(),
		BookmarkDate: bookmark.BookmarkDate.Format(domain.DateFormat),
	}, nil
}

func (s *bookmarkService) RemoveBookmark(ctx context.Context, recipeID string, userID string) error {
	id, err := recipe.ParseID(recipeID, domain.ErrBookmarkNotFound)
	if err != nil {
		return err
	}
	return s.bookmarkRepository.RemoveBookmark(ctx, userID, id.String())
}
