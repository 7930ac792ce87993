package rating

import (
	"campuscook/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RatingRepository interface {
		GetRatingByUserAndRecipe(ctx context.Context, userID, recipeID string) (*entities.Rating, error)
		CreateRating(ctx context.Context, rating *entities.Rating) error
		UpdateRating(ctx context.Context, rating *entities.Rating) error
		GetRatingsByRecipe(ctx context.Context, recipeID string) ([]*entities.Rating, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetRatingByUserAndRecipe(ctx context.Context, userID, recipeID string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) CreateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Omit("User").Create(rating).Error
}

func (r *ratingRepository) UpdateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).
		Model(rating).
		Select("rating", "review", "updated_at").
		Updates(rating).Error
}

// GetRatingsByRecipe returns ratings newest first with the reviewer preloaded.
func (r *ratingRepository) GetRatingsByRecipe(ctx context.Context, recipeID string) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
