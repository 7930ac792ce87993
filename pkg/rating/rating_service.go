package rating

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils"
	"campuscook/pkg/recipe"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RatingService interface {
		// UpsertRating reports created=true when a new row was stored.
		UpsertRating(ctx context.Context, recipeID string, req domain.RatingRequest, userID string) (domain.Rating, bool, error)
		GetRecipeRatings(ctx context.Context, recipeID string) (domain.RecipeRatingsResponse, error)
	}

	ratingService struct {
		ratingRepository RatingRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewRatingService(ratingRepository RatingRepository, recipeRepository recipe.RecipeRepository) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *ratingService) UpsertRating(ctx context.Context, recipeID string, req domain.RatingRequest, userID string) (domain.Rating, bool, error) {
	recipeUUID, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID)
	if err != nil {
		return domain.Rating{}, false, err
	}
	userUUID, err := domain.ParseID(userID, domain.ErrInvalidUserID)
	if err != nil {
		return domain.Rating{}, false, err
	}

	if req.Rating == nil || *req.Rating < domain.MinRating || *req.Rating > domain.MaxRating {
		return domain.Rating{}, false, domain.ErrRatingInvalid
	}
	var review *string
	if req.Review != nil {
		trimmed := strings.TrimSpace(*req.Review)
		if utf8.RuneCountInString(trimmed) > domain.MaxReviewLength {
			return domain.Rating{}, false, domain.ErrReviewTooLong
		}
		review = &trimmed
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.Rating{}, false, domain.NewInternalError(domain.MessageFailedAddRating, err)
	}
	if !exists {
		return domain.Rating{}, false, domain.ErrRecipeNotFound
	}

	existing, err := s.ratingRepository.GetRatingByUserAndRecipe(ctx, userID, recipeID)
	switch {
	case err == nil:
		return s.update(ctx, existing, *req.Rating, review)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Rating{}, false, domain.NewInternalError(domain.MessageFailedAddRating, err)
	}

	rating := &entities.Rating{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
		Rating:   *req.Rating,
	}
	if review != nil {
		rating.Review = *review
	}
	if err := s.ratingRepository.CreateRating(ctx, rating); err != nil {
		if !utils.IsDuplicateKey(err) {
			return domain.Rating{}, false, domain.NewInternalError(domain.MessageFailedAddRating, err)
		}
		// a concurrent submission won the insert; fold into it
		existing, err := s.ratingRepository.GetRatingByUserAndRecipe(ctx, userID, recipeID)
		if err != nil {
			return domain.Rating{}, false, domain.NewInternalError(domain.MessageFailedAddRating, err)
		}
		return s.update(ctx, existing, *req.Rating, review)
	}

	return toRating(rating), true, nil
}

func (s *ratingService) update(ctx context.Context, rating *entities.Rating, value int, review *string) (domain.Rating, bool, error) {
	rating.Rating = value
	if review != nil {
		rating.Review = *review
	}
	rating.UpdatedAt = time.Now()

	if err := s.ratingRepository.UpdateRating(ctx, rating); err != nil {
		return domain.Rating{}, false, domain.NewInternalError(domain.MessageFailedAddRating, err)
	}
	return toRating(rating), false, nil
}

// GetRecipeRatings is empty, not an error, for a recipe that no longer exists.
func (s *ratingService) GetRecipeRatings(ctx context.Context, recipeID string) (domain.RecipeRatingsResponse, error) {
	recipeUUID, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, err
	}

	res := domain.RecipeRatingsResponse{Ratings: []domain.RatingDetail{}}

	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, domain.NewInternalError(domain.MessageFailedGetRatings, err)
	}
	if !exists {
		return res, nil
	}

	ratings, err := s.ratingRepository.GetRatingsByRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, domain.NewInternalError(domain.MessageFailedGetRatings, err)
	}
	stats, err := s.recipeRepository.GetRatingStats(ctx, []uuid.UUID{recipeUUID})
	if err != nil {
		return domain.RecipeRatingsResponse{}, domain.NewInternalError(domain.MessageFailedGetRatings, err)
	}

	for _, rating := range ratings {
		detail := domain.RatingDetail{
			ID:        rating.ID.String(),
			Rating:    rating.Rating,
			Review:    rating.Review,
			User:      domain.Reviewer{ID: rating.UserID.String()},
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
		}
		if rating.User != nil {
			detail.User.Name = rating.User.Name
		}
		res.Ratings = append(res.Ratings, detail)
	}

	stat := stats[recipeUUID]
	res.AverageRating = domain.AverageRating(stat.Sum, stat.Count)
	res.TotalRatings = stat.Count
	return res, nil
}

func toRating(rating *entities.Rating) domain.Rating {
	return domain.Rating{
		ID:     rating.ID.String(),
		Rating: rating.Rating,
		Review: rating.Review,
	}
}
