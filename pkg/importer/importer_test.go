package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"recipehub/entities"
	"recipehub/pkg/recipe"
	"recipehub/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	user.UserRepository
	existing *entities.User
	calls    int
}

func (f *fakeUsers) GetOrCreateByUsername(_ context.Context, u *entities.User) error {
	f.calls++
	if f.existing != nil {
		*u = *f.existing
		return nil
	}
	cp := *u
	f.existing = &cp
	return nil
}

type fakeRecipes struct {
	recipe.RecipeRepository
	created []entities.Recipe
	titles  map[string]bool
	failOn  string
}

func (f *fakeRecipes) ExistsByTitle(_ context.Context, title string) (bool, error) {
	return f.titles[title], nil
}

func (f *fakeRecipes) CreateRecipe(_ context.Context, r *entities.Recipe) error {
	if r.Title == f.failOn {
		return errors.New("value too long for type character varying(255)")
	}
	f.titles[r.Title] = true
	f.created = append(f.created, *r)
	return nil
}

const sample = `name,description,ingredients_name,ingredients_quantity,instructions,cuisine,course,diet,prep_time (in mins),cook_time (in mins),image_url
Dal,Lentil stew,"lentils, water, salt","1 cup, 3 cups, 1 tsp","Rinse lentils
Boil with water",Indian,Main Course,Vegetarian,15,40,https://img.test/dal.jpg
Pancakes,Fluffy,"flour, milk",,Mix and fry,American,Breakfast,,2000,abc,
,No title,rice,1 cup,Cook,,,,,,
Dal,Duplicate,lentils,1 cup,Boil,Indian,,,10,10,
`

func newImporter(users *fakeUsers, recipes *fakeRecipes) *Importer {
	im := NewImporter(users, recipes, time.UTC)
	im.now = func() time.Time { return time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC) }
	return im
}

func TestRun(t *testing.T) {
	users := &fakeUsers{}
	recipes := &fakeRecipes{titles: map[string]bool{}}

	summary, err := newImporter(users, recipes).Run(context.Background(), strings.NewReader(sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 4, summary.LastRow)
	require.Len(t, recipes.created, 3)

	dal := recipes.created[0]
	assert.Equal(t, "Dal", dal.Title)
	assert.Equal(t, []string{"1 cup lentils", "3 cups water", "1 tsp salt"}, []string(dal.Ingredients))
	assert.Equal(t, []string{"Rinse lentils", "Boil with water"}, []string(dal.Instructions))
	assert.Equal(t, "00:15:00", dal.PrepTime)
	assert.Equal(t, "00:40:00", dal.CookTime)
	assert.Equal(t, "Vegetarian", dal.Diet)
	assert.Equal(t, "https://img.test/dal.jpg", dal.Image)
	assert.Equal(t, users.existing.ID, dal.UserID)
	assert.Equal(t, "2024-09-01", dal.UploadDate.Format("2006-01-02"))

	pancakes := recipes.created[1]
	assert.Equal(t, []string{"flour", "milk"}, []string(pancakes.Ingredients))
	assert.Equal(t, "23:59:00", pancakes.PrepTime)
	assert.Equal(t, "00:30:00", pancakes.CookTime)

	assert.Equal(t, "Untitled Recipe", recipes.created[2].Title)
}

func TestRun_StartRowAndExistingUser(t *testing.T) {
	anon := &entities.User{Username: AnonymousUsername}
	users := &fakeUsers{existing: anon}
	recipes := &fakeRecipes{titles: map[string]bool{}}

	summary, err := newImporter(users, recipes).Run(context.Background(), strings.NewReader(sample), Options{StartRow: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 4, summary.LastRow)
	assert.Equal(t, "Untitled Recipe", recipes.created[0].Title)
	assert.Equal(t, "Dal", recipes.created[1].Title)
	assert.Equal(t, 1, users.calls)
}

func TestRun_RowFailureIsReportedAndSkipped(t *testing.T) {
	recipes := &fakeRecipes{titles: map[string]bool{}, failOn: "Pancakes"}

	summary, err := newImporter(&fakeUsers{}, recipes).Run(context.Background(), strings.NewReader(sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, 1, summary.Errors[0].Row)
	assert.Contains(t, summary.Errors[0].Error(), "row 1:")
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newImporter(&fakeUsers{}, &fakeRecipes{titles: map[string]bool{}}).Run(ctx, strings.NewReader(sample), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMinutesToClock(t *testing.T) {
	cases := map[string]string{
		"":       "00:00:00",
		"0":      "00:00:00",
		"45":     "00:45:00",
		"90.5":   "01:30:00",
		"1439":   "23:59:00",
		"1440":   "23:59:00",
		"100000": "23:59:00",
		"soon":   "00:30:00",
		"-5":     "00:30:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, MinutesToClock(in), in)
	}
}

func TestBuildIngredients(t *testing.T) {
	assert.Equal(t, []string{"2 eggs", "1 cup flour"}, BuildIngredients("eggs, flour, sugar", "2, 1 cup"))
	assert.Equal(t, []string{"eggs", "flour"}, BuildIngredients("eggs, flour", ""))
	assert.Empty(t, BuildIngredients("", ""))
}
