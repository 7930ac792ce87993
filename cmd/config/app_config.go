package config

import (
	"campuscook/domain"
	"campuscook/internal/api/handlers"
	"campuscook/internal/api/presenters"
	"campuscook/internal/api/routes"
	"campuscook/internal/middleware"
	"campuscook/internal/observability"
	"campuscook/internal/utils"
	"campuscook/internal/utils/mailing"
	"campuscook/internal/utils/storage"
	"campuscook/pkg/admin"
	"campuscook/pkg/category"
	"campuscook/pkg/favorite"
	"campuscook/pkg/jwt"
	"campuscook/pkg/media"
	"campuscook/pkg/rating"
	"campuscook/pkg/recipe"
	"campuscook/pkg/user"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, cfg utils.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:           "CampusCook API",
		EnablePrintRoutes: !cfg.IsProduction(),
		BodyLimit:         domain.MaxImageSize + 1<<20,
		ErrorHandler:      errorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validator()

	obs := observability.NewConfig(
		observability.WithTracerProvider(otel.GetTracerProvider()),
		observability.WithMeterProvider(otel.GetMeterProvider()),
		observability.WithServiceName(cfg.OTelServiceName),
		observability.WithDetailedDBTracing(),
	)
	if err := observability.RegisterGORMCallbacks(db, obs); err != nil {
		return nil, err
	}

	// setting up logging and limiter
	output, err := logOutput(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(observability.Middleware(obs))
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     output,
	}))
	app.Use(compress.New())

	if limit := cfg.RateLimit(); limit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        limit,
			Expiration: 1 * time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageTooManyRequests, nil)
			},
		}))
	}

	// utils
	var s3 storage.AwsS3
	if cfg.S3Enabled() {
		s3, err = storage.NewAwsS3(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
	}
	mailer := mailing.NewMailer(cfg)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ratingRepository := rating.NewRatingRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL())
	userService := user.NewUserService(userRepository, jwtService, mailer, cfg.BcryptCost(), cfg.AppURL)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	ratingService := rating.NewRatingService(ratingRepository, recipeRepository)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository)
	categoryService := category.NewCategoryService(categoryRepository)
	adminService := admin.NewAdminService(adminRepository)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := userService.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
	}

	// Handler
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     handlers.NewUserHandler(userService, validator),
		RecipeHandler:   handlers.NewRecipeHandler(recipeService, validator),
		RatingHandler:   handlers.NewRatingHandler(ratingService),
		FavoriteHandler: handlers.NewFavoriteHandler(favoriteService),
		CategoryHandler: handlers.NewCategoryHandler(categoryService),
		AdminHandler:    handlers.NewAdminHandler(adminService),
		Middleware:      middlewares,
		JWTService:      jwtService,
		CORSOrigin:      cfg.CORSOrigin,
		StaticDir:       cfg.StaticDir,
	}
	if s3 != nil {
		routesConfig.UploadHandler = handlers.NewUploadHandler(media.NewMediaService(s3))
	}

	// routes
	routesConfig.Setup()
	return app, nil
}

// errorHandler is the last resort for errors no handler translated.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return presenters.ErrorResponse(c, fe.Code, fe.Message, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
}

func logOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Errorf("error creating logs directory: %v", err)
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
}
