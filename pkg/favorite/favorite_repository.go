package favorite

import (
	"campuscook/entities"
	"context"

	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		GetFavorite(ctx context.Context, userID, recipeID string) (*entities.Favorite, error)
		AddFavorite(ctx context.Context, favorite *entities.Favorite) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) (int64, error)
		GetFavoritesByUser(ctx context.Context, userID string) ([]*entities.Favorite, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) GetFavorite(ctx context.Context, userID, recipeID string) (*entities.Favorite, error) {
	var favorite entities.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(favorite).Error
}

// RemoveFavorite returns the number of rows removed.
func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	return tx.RowsAffected, tx.Error
}

// GetFavoritesByUser skips favorites whose recipe has been deleted.
func (r *favoriteRepository) GetFavoritesByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	var favorites []*entities.Favorite
	if err := r.db.WithContext(ctx).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Preload("Recipe.Author").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at desc").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
