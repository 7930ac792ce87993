package domain

import (
	"time"
)

var (
	MessageFailedGetCategories = "An error occurred while fetching categories"
)

type (
	Category struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		RecipeCount int64     `json:"recipeCount"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	CategoriesResponse struct {
		Categories []Category `json:"categories"`
	}

	CategorySeed struct {
		Name        string
		Description string
	}
)

// DefaultCategories is the seeded set recipes may be filed under.
var DefaultCategories = []CategorySeed{
	{Name: "breakfast", Description: "Morning meals and breakfast recipes"},
	{Name: "lunch", Description: "Midday meals and lunch recipes"},
	{Name: "dinner", Description: "Evening meals and dinner recipes"},
	{Name: "snack", Description: "Quick snacks and light bites"},
	{Name: "dessert", Description: "Sweet treats and desserts"},
}

func CategoryNotFound(name string) error {
	return NewValidationError("Category '" + name + "' does not exist")
}
