package domain

import (
	"time"
)

var (
	MessageSuccessDeleteRecipe = "Recipe deleted successfully"

	MessageFailedGetRecipes      = "An error occurred while fetching recipes"
	MessageFailedGetRecipeDetail = "An error occurred while fetching the recipe"
	MessageFailedCreateRecipe    = "An error occurred while creating the recipe"
	MessageFailedUpdateRecipe    = "An error occurred while updating the recipe"
	MessageFailedDeleteRecipe    = "An error occurred while deleting the recipe"
	MessageFailedGetUserRecipes  = "An error occurred while fetching user recipes"

	MessageRecipeRequired     = "Title, ingredients, steps, and category are required"
	MessageTitleLength        = "Title must be between 5 and 200 characters"
	MessageIngredientRequired = "At least one ingredient is required"
	MessageStepRequired       = "At least one preparation step is required"
	MessagePrepTimeInvalid    = "Preparation time must be a positive integer"
	MessageDifficultyInvalid  = "Difficulty must be easy, medium, or hard"

	ErrRecipeNotFound        = NewNotFoundError("Recipe not found")
	ErrInvalidRecipeID       = NewValidationError("Invalid recipe ID format")
	ErrRecipeEditForbidden   = NewAuthorizationError("You do not have permission to edit this recipe")
	ErrRecipeDeleteForbidden = NewAuthorizationError("You do not have permission to delete this recipe")
)

const (
	TitleMinLength = 5
	TitleMaxLength = 200

	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100

	RecentRecipesLimit = 10
)

var Difficulties = []string{"easy", "medium", "hard"}

type (
	RecipeListRequest struct {
		Page     int
		Limit    int
		Search   string
		Category string
		Sort     string
		Order    string
	}

	CreateRecipeRequest struct {
		Title       string   `json:"title" validate:"required"`
		Description string   `json:"description"`
		Ingredients []string `json:"ingredients" validate:"required"`
		Steps       []string `json:"steps" validate:"required"`
		PrepTime    *int     `json:"prep_time"`
		Difficulty  string   `json:"difficulty"`
		Category    string   `json:"category" validate:"required"`
		ImageURL    string   `json:"image_url"`
	}

	// UpdateRecipeRequest uses pointers so absent fields stay untouched.
	UpdateRecipeRequest struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Ingredients *[]string `json:"ingredients"`
		Steps       *[]string `json:"steps"`
		PrepTime    *int      `json:"prep_time"`
		Difficulty  *string   `json:"difficulty"`
		Category    *string   `json:"category"`
		ImageURL    *string   `json:"image_url"`
	}

	Author struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	Recipe struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Ingredients []string  `json:"ingredients"`
		Steps       []string  `json:"steps"`
		PrepTime    *int      `json:"prep_time,omitempty"`
		Difficulty  string    `json:"difficulty,omitempty"`
		Category    string    `json:"category"`
		ImageURL    string    `json:"image_url,omitempty"`
		Author      Author    `json:"author"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	RatedRecipe struct {
		Recipe
		AverageRating float64 `json:"averageRating"`
		RatingCount   int64   `json:"ratingCount"`
	}

	RecipeDetail struct {
		RatedRecipe
		IsFavorited bool `json:"isFavorited"`
	}

	AuthorRecipe struct {
		ID            string    `json:"id"`
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		Category      string    `json:"category"`
		ImageURL      string    `json:"image_url,omitempty"`
		PrepTime      *int      `json:"prep_time,omitempty"`
		Difficulty    string    `json:"difficulty,omitempty"`
		AverageRating float64   `json:"averageRating"`
		RatingCount   int64     `json:"ratingCount"`
		FavoriteCount int64     `json:"favoriteCount"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	Pagination struct {
		CurrentPage  int   `json:"currentPage"`
		TotalPages   int   `json:"totalPages"`
		TotalRecipes int64 `json:"totalRecipes"`
		Limit        int   `json:"limit"`
		HasNextPage  bool  `json:"hasNextPage"`
		HasPrevPage  bool  `json:"hasPrevPage"`
	}

	RecipeListResponse struct {
		Recipes    []RatedRecipe `json:"recipes"`
		Pagination Pagination    `json:"pagination"`
	}

	RecipeResponse struct {
		Recipe any `json:"recipe"`
	}

	AuthorRecipesResponse struct {
		Recipes []AuthorRecipe `json:"recipes"`
	}

	// RatingStat is the raw aggregate a recipe's average is derived from.
	RatingStat struct {
		Sum   int64
		Count int64
	}
)

// NewPagination derives page metadata; total pages is ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecipes: total,
		Limit:        limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}
