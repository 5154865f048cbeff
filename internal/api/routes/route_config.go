package routes

import (
	"recipehub/internal/api/handlers"
	"recipehub/internal/metrics"
	"recipehub/internal/middleware"
	"recipehub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	ReviewHandler   handlers.ReviewHandler
	BookmarkHandler handlers.BookmarkHandler
	HealthHandler   handlers.HealthHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipe()
	c.Review()
}

func (c *Config) GuestRoute() {
	c.App.Get("/healthz", c.HealthHandler.Health)
	c.App.Get("/metrics", metrics.Handler())
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	user := c.App.Group("/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/token/refresh", c.UserHandler.RefreshToken)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Put("/update", auth, c.UserHandler.UpdateUser)
		user.Delete("/delete", auth, c.UserHandler.DeleteUser)
		user.Post("/avatar", auth, c.UserHandler.UploadAvatar)
	}
	// bookmark routes
	{
		user.Post("/bookmark", auth, c.BookmarkHandler.BookmarkRecipe)
		user.Delete("/bookmark/:recipe_id/delete", auth, c.BookmarkHandler.RemoveBookmark)
	}
}

func (c *Config) Recipe() {
	recipes := c.App.Group("/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("/catalog", c.RecipeHandler.GetCatalog)
	recipes.Get("/uploaded", c.RecipeHandler.GetUploadedRecipes)
	recipes.Get("/bookmarked", c.RecipeHandler.GetBookmarkedRecipes)
	recipes.Get("/view/:recipe_id", c.RecipeHandler.GetRecipeDetail)

	recipes.Post("/upload", c.RecipeHandler.UploadRecipe)
	recipes.Put("/edit/:recipe_id", c.RecipeHandler.EditRecipe)
	recipes.Delete("/delete/:recipe_id", c.RecipeHandler.DeleteRecipe)
	recipes.Post("/image", c.RecipeHandler.UploadImage)
}

func (c *Config) Review() {
	reviews := c.App.Group("/reviews", c.Middleware.AuthMiddleware(c.JWTService))

	reviews.Post("/upload", c.ReviewHandler.CreateReview)
	reviews.Put("/edit/:review_id", c.ReviewHandler.EditReview)
	reviews.Delete("/delete/:review_id", c.ReviewHandler.DeleteReview)
}
