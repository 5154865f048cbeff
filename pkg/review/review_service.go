package review

import (
	"context"
	"errors"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/metrics"
	"recipehub/internal/utils"
	"recipehub/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReviewService interface {
		CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (domain.ReviewResponse, error)
		EditReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, userID string) (domain.ReviewResponse, error)
		DeleteReview(ctx context.Context, reviewID string, userID string) error
	}

	reviewService struct {
		reviewRepository ReviewRepository
		recipeRepository recipe.RecipeRepository
		now              func() time.Time
		location         *time.Location
	}
)

func NewReviewService(reviewRepository ReviewRepository, recipeRepository recipe.RecipeRepository, location *time.Location) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		recipeRepository: recipeRepository,
		now:              time.Now,
		location:         location,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req domain.CreateReviewRequest, userID string) (domain.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.ReviewResponse{}, domain.ErrInvalidRating
	}

	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ReviewResponse{}, domain.ErrParseUUID
	}
	recipeID, err := recipe.ParseID(req.RecipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return domain.ReviewResponse{}, err
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID.String()); err != nil {
		return domain.ReviewResponse{}, err
	}

	reviewed, err := s.reviewRepository.IsRecipeReviewed(ctx, userID, recipeID.String())
	if err != nil {
		return domain.ReviewResponse{}, err
	}
	if reviewed {
		return domain.ReviewResponse{}, domain.ErrReviewExists
	}

	comment := req.Comment
	review := entities.Review{
		ID:         uuid.New(),
		UserID:     authorID,
		RecipeID:   recipeID,
		Rating:     req.Rating,
		Comment:    &comment,
		ReviewDate: utils.CalendarDate(s.now(), s.location),
	}

	if err := s.reviewRepository.CreateReview(ctx, &review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ReviewResponse{}, domain.ErrReviewExists
		}
		return domain.ReviewResponse{}, err
	}
	metrics.ReviewsCreated.Inc()

	return recipe.ToReviewResponse(review), nil
}

func (s *reviewService) getOwnReview(ctx context.Context, reviewID string, userID string) (*entities.Review, error) {
	id, err := recipe.ParseID(reviewID, domain.ErrReviewNotFound)
	if err != nil {
		return nil, err
	}

	review, err := s.reviewRepository.GetReviewByID(ctx, id.String())
	if err != nil {
		return nil, err
	}
	if review.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedReviewAccess
	}
	return review, nil
}

func (s *reviewService) EditReview(ctx context.Context, reviewID string, req domain.UpdateReviewRequest, userID string) (domain.ReviewResponse, error) {
	review, err := s.getOwnReview(ctx, reviewID, userID)
	if err != nil {
		return domain.ReviewResponse{}, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		comment := *req.Comment
		review.Comment = &comment
	}

	if err := s.reviewRepository.UpdateReview(ctx, review); err != nil {
		return domain.ReviewResponse{}, err
	}
	return recipe.ToReviewResponse(*review), nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID string) error {
	review, err := s.getOwnReview(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	return s.reviewRepository.DeleteReview(ctx, review.ID.String())
}
