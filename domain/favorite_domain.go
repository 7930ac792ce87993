package domain

import "time"

var (
	MessageSuccessFavoriteAdded   = "Recipe added to favorites"
	MessageSuccessFavoriteExists  = "Recipe already in favorites"
	MessageSuccessFavoriteRemoved = "Recipe removed from favorites"

	MessageFailedAddFavorite    = "An error occurred while adding favorite"
	MessageFailedRemoveFavorite = "An error occurred while removing favorite"
	MessageFailedGetFavorites   = "An error occurred while fetching favorites"

	ErrFavoriteNotFound = NewNotFoundError("Favorite not found")
)

type (
	Favorite struct {
		ID string `json:"id"`
	}

	FavoriteResponse struct {
		Message  string   `json:"message"`
		Favorite Favorite `json:"favorite"`
	}

	FavoriteRecipe struct {
		Recipe
		FavoritedAt time.Time `json:"favoritedAt"`
	}

	FavoritesResponse struct {
		Recipes []FavoriteRecipe `json:"recipes"`
	}
)
