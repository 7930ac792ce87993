package category

import (
	"campuscook/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CategoryRepository interface {
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		CountRecipesByCategory(ctx context.Context) (map[string]int64, error)
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountRecipesByCategory counts live recipes per category name in one query.
func (r *categoryRepository) CountRecipesByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category    string
		RecipeCount int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("category, COUNT(*) AS recipe_count").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.RecipeCount
	}
	return counts, nil
}
