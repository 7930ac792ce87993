package admin

import (
	"campuscook/domain"
	"campuscook/entities"
	"context"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		GetStatistics(ctx context.Context) (domain.DashboardStatistics, error)
		GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetStatistics counts ratings and favorites only while their recipe exists.
func (r *adminRepository) GetStatistics(ctx context.Context) (domain.DashboardStatistics, error) {
	var stats domain.DashboardStatistics
	db := r.db.WithContext(ctx)

	if err := db.Model(&entities.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Recipe{}).Count(&stats.TotalRecipes).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Rating{}).
		Joins("JOIN recipes ON recipes.id = ratings.recipe_id").
		Count(&stats.TotalRatings).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&entities.Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Count(&stats.TotalFavorites).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *adminRepository) GetRecentRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
