package recipe

import (
	"strconv"
	"strings"

	"recipehub/domain"
	"recipehub/entities"
)

// BuildTags lists cuisine, course and diet in that order, skipping empty ones.
func BuildTags(cuisine, course, diet string) []string {
	tags := make([]string, 0, 3)
	for _, tag := range []string{cuisine, course, diet} {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ClockMinutes converts "HH:MM:SS" to whole minutes; seconds are dropped.
func ClockMinutes(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

func ToRecipeSummary(l RecipeListing) domain.RecipeSummary {
	return domain.RecipeSummary{
		RecipeID:      l.ID.String(),
		Title:         l.Title,
		Description:   l.Description,
		Tags:          BuildTags(l.Cuisine, l.Course, l.Diet),
		Time:          ClockMinutes(l.PrepTime) + ClockMinutes(l.CookTime),
		UploadDate:    l.UploadDate.Format(domain.DateFormat),
		Author:        l.AuthorUsername,
		Image:         l.Image,
		IsBookmarked:  l.IsBookmarked,
		AverageRating: l.AverageRating,
	}
}

func ToRecipeSummaries(listings []RecipeListing) []domain.RecipeSummary {
	summaries := make([]domain.RecipeSummary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, ToRecipeSummary(l))
	}
	return summaries
}

// ToRecipeDetail splits reviews into the viewer's own and everyone else's,
// keeping the incoming order for the latter.
func ToRecipeDetail(l RecipeListing, reviews []entities.Review, viewerID string) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		RecipeSummary: ToRecipeSummary(l),
		Ingredients:   []string(l.Ingredients),
		Instructions:  []string(l.Instructions),
		PrepTime:      l.PrepTime,
		CookTime:      l.CookTime,
		Cuisine:       l.Cuisine,
		Course:        l.Course,
		Diet:          l.Diet,
		VideoLink:     l.VideoLink,
		IsOwner:       l.UserID.String() == viewerID,
		Reviews:       make([]domain.ReviewResponse, 0, len(reviews)),
	}

	for _, r := range reviews {
		res := ToReviewResponse(r)
		if r.UserID.String() == viewerID {
			detail.YourReview = &res
			continue
		}
		detail.Reviews = append(detail.Reviews, res)
	}
	return detail
}

func ToRecipeResponse(r entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  []string(r.Ingredients),
		Instructions: []string(r.Instructions),
		Cuisine:      r.Cuisine,
		Course:       r.Course,
		Diet:         r.Diet,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		UploadDate:   r.UploadDate.Format(domain.DateFormat),
		Image:        r.Image,
		VideoLink:    r.VideoLink,
	}
}

func ToReviewResponse(r entities.Review) domain.ReviewResponse {
	res := domain.ReviewResponse{
		ID:         r.ID.String(),
		RecipeID:   r.RecipeID.String(),
		Rating:     r.Rating,
		ReviewDate: r.ReviewDate.Format(domain.DateFormat),
	}
	if r.User != nil {
		res.Username = r.User.Username
	}
	if r.Comment != nil {
		res.Comment = *r.Comment
	}
	return res
}
