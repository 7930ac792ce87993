package routes

import (
	"campuscook/domain"
	"campuscook/internal/api/handlers"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	RatingHandler   handlers.RatingHandler
	FavoriteHandler handlers.FavoriteHandler
	CategoryHandler handlers.CategoryHandler
	AdminHandler    handlers.AdminHandler
	// UploadHandler is nil when object storage is not configured.
	UploadHandler handlers.UploadHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
	CORSOrigin    string
	StaticDir     string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware(c.CORSOrigin))
	c.GuestRoute()

	api := c.App.Group("/api")
	c.Auth(api)
	c.Recipes(api)
	c.Categories(api)
	c.Favorites(api)
	c.Ratings(api)
	c.Admin(api)
	c.Uploads(api)

	c.Static()
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
	})
}

func (c *Config) GuestRoute() {
	health := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "ok",
			"message": "CampusCook API is running",
		})
	}
	c.App.Get("/health", health)
	c.App.Get("/api/health", health)
}

func (c *Config) Auth(api fiber.Router) {
	auth := api.Group("/auth")
	{
		auth.Post("/signup", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes(api fiber.Router) {
	recipes := api.Group("/recipes")
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Post("", required, c.RecipeHandler.CreateRecipe)
	recipes.Get("/user/:userId", c.RecipeHandler.GetUserRecipes)
	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", required, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", required, c.RecipeHandler.DeleteRecipe)
}

func (c *Config) Categories(api fiber.Router) {
	api.Get("/categories", c.CategoryHandler.GetCategories)
}

func (c *Config) Favorites(api fiber.Router) {
	favorites := api.Group("/favorites", c.Middleware.AuthMiddleware(c.JWTService))
	favorites.Get("", c.FavoriteHandler.GetFavorites)
	favorites.Post("/:recipeId", c.FavoriteHandler.AddFavorite)
	favorites.Delete("/:recipeId", c.FavoriteHandler.RemoveFavorite)
}

func (c *Config) Ratings(api fiber.Router) {
	ratings := api.Group("/ratings")
	ratings.Get("/recipe/:recipeId", c.RatingHandler.GetRecipeRatings)
	ratings.Post("/:recipeId", c.Middleware.AuthMiddleware(c.JWTService), c.RatingHandler.RateRecipe)
}

func (c *Config) Admin(api fiber.Router) {
	admin := api.Group("/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.RoleMiddleware(domain.RoleAdmin),
	)
	admin.Get("/dashboard", c.AdminHandler.GetDashboard)
}

func (c *Config) Uploads(api fiber.Router) {
	if c.UploadHandler == nil {
		return
	}
	api.Post("/uploads/image", c.Middleware.AuthMiddleware(c.JWTService), c.UploadHandler.UploadRecipeImage)
}

// Static serves the built client with an index fallback for client-side routes.
func (c *Config) Static() {
	if c.StaticDir == "" {
		return
	}
	c.App.Static("/", c.StaticDir)
	c.App.Get("/*", func(ctx *fiber.Ctx) error {
		if strings.HasPrefix(ctx.Path(), "/api") {
			return ctx.Next()
		}
		return ctx.SendFile(c.StaticDir + "/index.html")
	})
}
