package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"recipehub/internal/api/handlers"
	"recipehub/internal/api/routes"
	"recipehub/internal/metrics"
	"recipehub/internal/middleware"
	"recipehub/internal/utils"
	"recipehub/internal/utils/mailing"
	"recipehub/internal/utils/ratelimit"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/bookmark"
	"recipehub/pkg/jwt"
	"recipehub/pkg/recipe"
	"recipehub/pkg/review"
	"recipehub/pkg/user"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:     "recipehub",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	validator := utils.Validate
	location := utils.LoadLocation(utils.GetConfig("APP_TIMEZONE"))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(metrics.Middleware())

	// setting up logging and limiter
	logFile := utils.GetConfig("ACCESS_LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   location.String(),
		Output:     file,
	}))

	checks := map[string]handlers.Pinger{"database": handlers.DatabasePinger(db)}
	limiterConfig := limiter.Config{
		Max:        utils.GetConfigInt("RATE_LIMIT_MAX", 20),
		Expiration: time.Duration(utils.GetConfigInt("RATE_LIMIT_WINDOW_SECONDS", 1)) * time.Second,
	}
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		client := ratelimit.NewRedisClient(addr, utils.GetConfig("REDIS_PASSWORD"), utils.GetConfigInt("REDIS_DB", 0))
		limiterConfig.Storage = ratelimit.NewRedisStorage(client)
		checks["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		log.Info().Str("addr", addr).Msg("rate limiter uses redis storage")
	}
	app.Use(limiter.New(limiterConfig))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	reviewRepository := review.NewReviewRepository(db)
	bookmarkRepository := bookmark.NewBookmarkRepository(db)

	// Service
	jwtService := jwt.NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		time.Duration(utils.GetConfigInt("ACCESS_TOKEN_TTL_MINUTES", 60))*time.Minute,
		time.Duration(utils.GetConfigInt("REFRESH_TOKEN_TTL_MINUTES", 1440))*time.Minute,
	)
	userService := user.NewUserService(userRepository, jwtService, s3, mailer, utils.GetConfig("APP_URL"), location)
	recipeService := recipe.NewRecipeService(recipeRepository, s3, location)
	reviewService := review.NewReviewService(reviewRepository, recipeRepository, location)
	bookmarkService := bookmark.NewBookmarkService(bookmarkRepository, recipeRepository, location)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService, validator)
	healthHandler := handlers.NewHealthHandler(checks)

	middlewares := middleware.NewMiddleware(userRepository, utils.GetConfig("CORS_ALLOW_ORIGINS"))

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		ReviewHandler:   reviewHandler,
		BookmarkHandler: bookmarkHandler,
		HealthHandler:   healthHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
