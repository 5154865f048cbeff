package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testUserID = "2b1f7c3e-6a55-4a0e-9d8e-0a4a7f5b9c11"

func newTestApp() *fiber.App {
	utils.InitValidator()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, presenters.Response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var res presenters.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp.StatusCode, res
}

type fakeRecipeService struct {
	uploaded  *domain.UploadRecipeRequest
	uploadErr error
	page      domain.PaginationRequest
	editErr   error
	deleteErr error
}

func (f *fakeRecipeService) GetCatalog(_ context.Context, page domain.PaginationRequest, _ string) ([]domain.RecipeSummary, error) {
	f.page = page
	return []domain.RecipeSummary{{RecipeID: "r1", Title: "Soup"}}, nil
}

func (f *fakeRecipeService) GetUploadedRecipes(_ context.Context, page domain.PaginationRequest, _ string) ([]domain.RecipeSummary, error) {
	f.page = page
	return []domain.RecipeSummary{}, nil
}

func (f *fakeRecipeService) GetBookmarkedRecipes(_ context.Context, page domain.PaginationRequest, _ string) ([]domain.RecipeSummary, error) {
	f.page = page
	return []domain.RecipeSummary{}, nil
}

func (f *fakeRecipeService) GetRecipeDetail(_ context.Context, recipeID string, _ string) (domain.RecipeDetail, error) {
	if recipeID != "r1" {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}
	return domain.RecipeDetail{RecipeSummary: domain.RecipeSummary{RecipeID: "r1"}}, nil
}

func (f *fakeRecipeService) UploadRecipe(_ context.Context, req domain.UploadRecipeRequest, _ string) (domain.RecipeResponse, error) {
	if f.uploadErr != nil {
		return domain.RecipeResponse{}, f.uploadErr
	}
	f.uploaded = &req
	return domain.RecipeResponse{ID: "r1", Title: req.Title}, nil
}

func (f *fakeRecipeService) EditRecipe(_ context.Context, recipeID string, req domain.UpdateRecipeRequest, _ string) (domain.RecipeResponse, error) {
	if f.editErr != nil {
		return domain.RecipeResponse{}, f.editErr
	}
	return domain.RecipeResponse{ID: recipeID}, nil
}

func (f *fakeRecipeService) DeleteRecipe(context.Context, string, string) error {
	return f.deleteErr
}

func (f *fakeRecipeService) UploadImage(context.Context, domain.UploadImageRequest, string) (domain.UploadImageResponse, error) {
	return domain.UploadImageResponse{Image: "https://bucket.s3.region.amazonaws.com/recipes/x.png"}, nil
}
