package recipe

import (
	"testing"
	"time"

	"recipehub/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTags(t *testing.T) {
	assert.Equal(t, []string{"Italian", "Main", "Vegetarian"}, BuildTags("Italian", "Main", "Vegetarian"))
	assert.Equal(t, []string{"Dessert"}, BuildTags("", "Dessert", ""))
	assert.Equal(t, []string{}, BuildTags("", "", ""))
	assert.Equal(t, []string{" "}, BuildTags("", "", " "))
}

func TestClockMinutes(t *testing.T) {
	cases := map[string]int{
		"00:30:00": 30,
		"01:15:59": 75,
		"23:59:00": 1439,
		"00:00:45": 0,
		"":         0,
		"ab:10:00": 0,
	}
	for clock, want := range cases {
		assert.Equal(t, want, ClockMinutes(clock), clock)
	}
}

func TestToRecipeSummary(t *testing.T) {
	listing := RecipeListing{
		Recipe: entities.Recipe{
			ID:         uuid.New(),
			Title:      "Soup",
			Cuisine:    "French",
			Diet:       "Vegan",
			PrepTime:   "00:10:30",
			CookTime:   "01:05:00",
			UploadDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		AuthorUsername: "chef",
		IsBookmarked:   true,
	}

	summary := ToRecipeSummary(listing)

	assert.Equal(t, []string{"French", "Vegan"}, summary.Tags)
	assert.Equal(t, 75, summary.Time)
	assert.Equal(t, "2024-05-01", summary.UploadDate)
	assert.Equal(t, "chef", summary.Author)
	assert.True(t, summary.IsBookmarked)
	assert.Zero(t, summary.AverageRating)
}

func TestToRecipeDetail_SplitsViewerReview(t *testing.T) {
	owner, viewer, other := uuid.New(), uuid.New(), uuid.New()
	comment := "lovely"
	listing := RecipeListing{Recipe: entities.Recipe{ID: uuid.New(), UserID: owner}}
	reviews := []entities.Review{
		{ID: uuid.New(), UserID: other, Rating: 4, User: &entities.User{Username: "other"}},
		{ID: uuid.New(), UserID: viewer, Rating: 5, Comment: &comment, User: &entities.User{Username: "viewer"}},
	}

	detail := ToRecipeDetail(listing, reviews, viewer.String())

	assert.False(t, detail.IsOwner)
	require.NotNil(t, detail.YourReview)
	assert.Equal(t, 5, detail.YourReview.Rating)
	assert.Equal(t, "lovely", detail.YourReview.Comment)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "other", detail.Reviews[0].Username)

	ownDetail := ToRecipeDetail(listing, nil, owner.String())
	assert.True(t, ownDetail.IsOwner)
	assert.Nil(t, ownDetail.YourReview)
	assert.NotNil(t, ownDetail.Reviews)
	assert.Empty(t, ownDetail.Reviews)
}
