package review

import (
	"context"
	"testing"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipe.RecipeRepository
	ids map[string]bool
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	if !f.ids[id] {
		return nil, domain.ErrRecipeNotFound
	}
	return &entities.Recipe{ID: uuid.MustParse(id)}, nil
}

type fakeReviewRepository struct {
	reviews      map[string]*entities.Review
	raceOnCreate bool
}

func (f *fakeReviewRepository) CreateReview(_ context.Context, review *entities.Review) error {
	if f.raceOnCreate {
		return gorm.ErrDuplicatedKey
	}
	if err := review.BeforeSave(nil); err != nil {
		return err
	}
	cp := *review
	f.reviews[review.ID.String()] = &cp
	return nil
}

func (f *fakeReviewRepository) GetReviewByID(_ context.Context, id string) (*entities.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepository) IsRecipeReviewed(_ context.Context, userID, recipeID string) (bool, error) {
	for _, r := range f.reviews {
		if r.UserID.String() == userID && r.RecipeID.String() == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepository) UpdateReview(_ context.Context, review *entities.Review) error {
	if err := review.BeforeSave(nil); err != nil {
		return err
	}
	cp := *review
	f.reviews[review.ID.String()] = &cp
	return nil
}

func (f *fakeReviewRepository) DeleteReview(_ context.Context, id string) error {
	delete(f.reviews, id)
	return nil
}

type reviewFixture struct {
	reviews  *fakeReviewRepository
	service  ReviewService
	recipeID string
	author   string
}

func newReviewFixture() *reviewFixture {
	recipeID := uuid.NewString()
	f := &reviewFixture{
		reviews:  &fakeReviewRepository{reviews: map[string]*entities.Review{}},
		recipeID: recipeID,
		author:   uuid.NewString(),
	}
	svc := NewReviewService(f.reviews, &fakeRecipeRepository{ids: map[string]bool{recipeID: true}}, time.UTC).(*reviewService)
	svc.now = func() time.Time { return time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC) }
	f.service = svc
	return f
}

func (f *reviewFixture) create(t *testing.T, rating int) domain.ReviewResponse {
	t.Helper()
	res, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{
		RecipeID: f.recipeID,
		Rating:   rating,
		Comment:  "tasty",
	}, f.author)
	require.NoError(t, err)
	return res
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture()

	res := f.create(t, 4)

	assert.Equal(t, 4, res.Rating)
	assert.Equal(t, "tasty", res.Comment)
	assert.Equal(t, f.recipeID, res.RecipeID)
	assert.Equal(t, "2024-07-04", res.ReviewDate)
}

func TestCreateReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{1, 5} {
		f := newReviewFixture()
		f.create(t, rating)
	}

	for _, rating := range []int{0, 6} {
		f := newReviewFixture()
		_, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: f.recipeID, Rating: rating, Comment: "x"}, f.author)
		assert.ErrorIs(t, err, domain.ErrValidation, "rating %d", rating)
	}
}

func TestCreateReview_Duplicate(t *testing.T) {
	f := newReviewFixture()
	f.create(t, 3)

	_, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: f.recipeID, Rating: 2, Comment: "again"}, f.author)
	assert.ErrorIs(t, err, domain.ErrReviewExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateReview_LostRaceIsConflict(t *testing.T) {
	f := newReviewFixture()
	f.reviews.raceOnCreate = true

	_, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: f.recipeID, Rating: 2, Comment: "x"}, f.author)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateReview_MissingRecipe(t *testing.T) {
	f := newReviewFixture()

	_, err := f.service.CreateReview(context.Background(), domain.CreateReviewRequest{RecipeID: uuid.NewString(), Rating: 2, Comment: "x"}, f.author)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditReview(t *testing.T) {
	f := newReviewFixture()
	created := f.create(t, 3)

	t.Run("author can patch rating only", func(t *testing.T) {
		rating := 5
		res, err := f.service.EditReview(context.Background(), created.ID, domain.UpdateReviewRequest{Rating: &rating}, f.author)
		require.NoError(t, err)
		assert.Equal(t, 5, res.Rating)
		assert.Equal(t, "tasty", res.Comment)
		assert.Equal(t, created.ReviewDate, res.ReviewDate)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		rating := 1
		_, err := f.service.EditReview(context.Background(), created.ID, domain.UpdateReviewRequest{Rating: &rating}, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing review", func(t *testing.T) {
		_, err := f.service.EditReview(context.Background(), uuid.NewString(), domain.UpdateReviewRequest{}, f.author)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("out of range rating rejected at persistence", func(t *testing.T) {
		rating := 9
		_, err := f.service.EditReview(context.Background(), created.ID, domain.UpdateReviewRequest{Rating: &rating}, f.author)
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})
}

func TestDeleteReview(t *testing.T) {
	f := newReviewFixture()
	created := f.create(t, 3)

	err := f.service.DeleteReview(context.Background(), created.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.service.DeleteReview(context.Background(), "nope", f.author)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.service.DeleteReview(context.Background(), created.ID, f.author))
	assert.Empty(t, f.reviews.reviews)
}
