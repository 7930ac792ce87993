package favorite

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils"
	"campuscook/pkg/recipe"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteService interface {
		// AddFavorite reports created=false when the favorite already existed.
		AddFavorite(ctx context.Context, recipeID string, userID string) (domain.Favorite, bool, error)
		RemoveFavorite(ctx context.Context, recipeID string, userID string) error
		GetFavorites(ctx context.Context, userID string) (domain.FavoritesResponse, error)
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipeRepository   recipe.RecipeRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipeRepository recipe.RecipeRepository) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipeRepository:   recipeRepository,
	}
}

func (s *favoriteService) AddFavorite(ctx context.Context, recipeID string, userID string) (domain.Favorite, bool, error) {
	recipeUUID, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID)
	if err != nil {
		return domain.Favorite{}, false, err
	}
	userUUID, err := domain.ParseID(userID, domain.ErrInvalidUserID)
	if err != nil {
		return domain.Favorite{}, false, err
	}

	exists, err := s.recipeRepository.RecipeExists(ctx, recipeID)
	if err != nil {
		return domain.Favorite{}, false, domain.NewInternalError(domain.MessageFailedAddFavorite, err)
	}
	if !exists {
		return domain.Favorite{}, false, domain.ErrRecipeNotFound
	}

	if existing, err := s.existing(ctx, userID, recipeID); err != nil || existing != nil {
		return toFavorite(existing), false, err
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
	}
	if err := s.favoriteRepository.AddFavorite(ctx, favorite); err != nil {
		if !utils.IsDuplicateKey(err) {
			return domain.Favorite{}, false, domain.NewInternalError(domain.MessageFailedAddFavorite, err)
		}
		// lost a race with an identical request
		existing, err := s.existing(ctx, userID, recipeID)
		if err != nil || existing == nil {
			return domain.Favorite{}, false, domain.NewInternalError(domain.MessageFailedAddFavorite, err)
		}
		return toFavorite(existing), false, nil
	}

	return toFavorite(favorite), true, nil
}

func (s *favoriteService) existing(ctx context.Context, userID, recipeID string) (*entities.Favorite, error) {
	favorite, err := s.favoriteRepository.GetFavorite(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.NewInternalError(domain.MessageFailedAddFavorite, err)
	}
	return favorite, nil
}

// RemoveFavorite works for favorites whose recipe was already deleted.
func (s *favoriteService) RemoveFavorite(ctx context.Context, recipeID string, userID string) error {
	if _, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID); err != nil {
		return err
	}

	removed, err := s.favoriteRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return domain.NewInternalError(domain.MessageFailedRemoveFavorite, err)
	}
	if removed == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (s *favoriteService) GetFavorites(ctx context.Context, userID string) (domain.FavoritesResponse, error) {
	favorites, err := s.favoriteRepository.GetFavoritesByUser(ctx, userID)
	if err != nil {
		return domain.FavoritesResponse{}, domain.NewInternalError(domain.MessageFailedGetFavorites, err)
	}

	res := domain.FavoritesResponse{Recipes: make([]domain.FavoriteRecipe, 0, len(favorites))}
	for _, favorite := range favorites {
		if favorite.Recipe == nil {
			continue
		}
		res.Recipes = append(res.Recipes, domain.FavoriteRecipe{
			Recipe:      recipe.ToRecipe(favorite.Recipe),
			FavoritedAt: favorite.CreatedAt,
		})
	}
	return res, nil
}

func toFavorite(favorite *entities.Favorite) domain.Favorite {
	if favorite == nil {
		return domain.Favorite{}
	}
	return domain.Favorite{ID: favorite.ID.String()}
}
