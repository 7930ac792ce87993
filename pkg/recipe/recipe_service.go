package recipe

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils/storage"
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, req domain.RecipeListRequest) (domain.RecipeListResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, caller domain.Identity) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, caller domain.Identity) error
		GetRecipesByAuthor(ctx context.Context, authorID string) (domain.AuthorRecipesResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

// NewRecipeService accepts a nil s3 when object storage is not configured.
func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, req domain.RecipeListRequest) (domain.RecipeListResponse, error) {
	req = NormalizeListRequest(req)

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, req)
	if err != nil {
		return domain.RecipeListResponse{}, domain.NewInternalError(domain.MessageFailedGetRecipes, err)
	}

	stats, err := s.recipeRepository.GetRatingStats(ctx, recipeIDs(recipes))
	if err != nil {
		return domain.RecipeListResponse{}, domain.NewInternalError(domain.MessageFailedGetRecipes, err)
	}

	res := domain.RecipeListResponse{
		Recipes:    make([]domain.RatedRecipe, 0, len(recipes)),
		Pagination: domain.NewPagination(req.Page, req.Limit, total),
	}
	for _, recipe := range recipes {
		res.Recipes = append(res.Recipes, withRating(ToRecipe(recipe), stats[recipe.ID]))
	}
	return res, nil
}

// NormalizeListRequest applies the paging defaults and the page size cap.
func NormalizeListRequest(req domain.RecipeListRequest) domain.RecipeListRequest {
	if req.Page < 1 {
		req.Page = domain.DefaultPage
	}
	if req.Limit < 1 {
		req.Limit = domain.DefaultLimit
	}
	if req.Limit > domain.MaxLimit {
		req.Limit = domain.MaxLimit
	}
	return req
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrInvalidUserID
	}

	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	if title == "" || len(req.Ingredients) == 0 || len(req.Steps) == 0 || category == "" {
		return domain.RecipeDetail{}, domain.NewValidationError(domain.MessageRecipeRequired)
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		AuthorID:    authorID,
	}
	fields := recipeFields{
		Title:       &title,
		Ingredients: &req.Ingredients,
		Steps:       &req.Steps,
		PrepTime:    req.PrepTime,
		Difficulty:  &req.Difficulty,
		Category:    &category,
	}
	if err := s.apply(ctx, recipe, fields, domain.MessageFailedCreateRecipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.NewInternalError(domain.MessageFailedCreateRecipe, err)
	}

	return s.detail(ctx, recipe.ID.String(), userID, domain.MessageFailedCreateRecipe)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	if _, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID); err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.detail(ctx, recipeID, userID, domain.MessageFailedGetRecipeDetail)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, caller domain.Identity) (domain.RecipeDetail, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, caller, domain.ErrRecipeEditForbidden, domain.MessageFailedUpdateRecipe)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	previousImage := recipe.ImageURL

	fields := recipeFields{
		Title:       req.Title,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		PrepTime:    req.PrepTime,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
	}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		fields.Title = &title
	}
	if fields.Category != nil {
		category := strings.TrimSpace(*fields.Category)
		fields.Category = &category
	}
	if err := s.apply(ctx, recipe, fields, domain.MessageFailedUpdateRecipe); err != nil {
		return domain.RecipeDetail{}, err
	}
	if req.Description != nil {
		recipe.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		recipe.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.NewInternalError(domain.MessageFailedUpdateRecipe, err)
	}
	if previousImage != recipe.ImageURL {
		s.removeImage(ctx, previousImage, recipe.AuthorID)
	}

	return s.detail(ctx, recipeID, caller.UserID, domain.MessageFailedUpdateRecipe)
}

// DeleteRecipe leaves the recipe's ratings and favorites in place.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, caller domain.Identity) error {
	recipe, err := s.ownedRecipe(ctx, recipeID, caller, domain.ErrRecipeDeleteForbidden, domain.MessageFailedDeleteRecipe)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		return domain.NewInternalError(domain.MessageFailedDeleteRecipe, err)
	}
	s.removeImage(ctx, recipe.ImageURL, recipe.AuthorID)
	return nil
}

func (s *recipeService) GetRecipesByAuthor(ctx context.Context, authorID string) (domain.AuthorRecipesResponse, error) {
	if _, err := domain.ParseID(authorID, domain.ErrInvalidUserID); err != nil {
		return domain.AuthorRecipesResponse{}, err
	}

	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, authorID)
	if err != nil {
		return domain.AuthorRecipesResponse{}, domain.NewInternalError(domain.MessageFailedGetUserRecipes, err)
	}

	ids := recipeIDs(recipes)
	stats, err := s.recipeRepository.GetRatingStats(ctx, ids)
	if err != nil {
		return domain.AuthorRecipesResponse{}, domain.NewInternalError(domain.MessageFailedGetUserRecipes, err)
	}
	favorites, err := s.recipeRepository.GetFavoriteCounts(ctx, ids)
	if err != nil {
		return domain.AuthorRecipesResponse{}, domain.NewInternalError(domain.MessageFailedGetUserRecipes, err)
	}

	res := domain.AuthorRecipesResponse{Recipes: make([]domain.AuthorRecipe, 0, len(recipes))}
	for _, recipe := range recipes {
		stat := stats[recipe.ID]
		res.Recipes = append(res.Recipes, domain.AuthorRecipe{
			ID:            recipe.ID.String(),
			Title:         recipe.Title,
			Description:   recipe.Description,
			Category:      recipe.Category,
			ImageURL:      recipe.ImageURL,
			PrepTime:      recipe.PrepTime,
			Difficulty:    recipe.Difficulty,
			AverageRating: domain.AverageRating(stat.Sum, stat.Count),
			RatingCount:   stat.Count,
			FavoriteCount: favorites[recipe.ID],
			CreatedAt:     recipe.CreatedAt,
		})
	}
	return res, nil
}

// ownedRecipe loads a recipe the caller may modify: its author or an admin.
func (s *recipeService) ownedRecipe(ctx context.Context, recipeID string, caller domain.Identity, forbidden error, failure string) (*entities.Recipe, error) {
	if _, err := domain.ParseID(recipeID, domain.ErrInvalidRecipeID); err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.NewInternalError(failure, err)
	}

	if recipe.AuthorID.String() != caller.UserID && !caller.IsAdmin() {
		return nil, forbidden
	}
	return recipe, nil
}

func (s *recipeService) detail(ctx context.Context, recipeID string, userID string, failure string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, domain.NewInternalError(failure, err)
	}

	stats, err := s.recipeRepository.GetRatingStats(ctx, []uuid.UUID{recipe.ID})
	if err != nil {
		return domain.RecipeDetail{}, domain.NewInternalError(failure, err)
	}

	res := domain.RecipeDetail{RatedRecipe: withRating(ToRecipe(recipe), stats[recipe.ID])}
	if userID != "" {
		res.IsFavorited, err = s.recipeRepository.IsRecipeFavorited(ctx, userID, recipeID)
		if err != nil {
			return domain.RecipeDetail{}, domain.NewInternalError(failure, err)
		}
	}
	return res, nil
}

// removeImage deletes a replaced or orphaned upload. Only objects directly in
// the author's own upload folder are deleted, and only once no recipe links
// to them. Links outside the bucket are ignored.
func (s *recipeService) removeImage(ctx context.Context, link string, authorID uuid.UUID) {
	if s.s3 == nil || link == "" {
		return
	}
	objectKey := s.s3.GetObjectKeyFromLink(link)
	if objectKey == "" || path.Dir(objectKey) != domain.RecipeImageFolder(authorID.String()) {
		return
	}

	inUse, err := s.recipeRepository.CountRecipesByImage(ctx, link)
	if err != nil {
		log.Warnf("checking image %s usage: %v", objectKey, err)
		return
	}
	if inUse > 0 {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warnf("deleting image %s: %v", objectKey, err)
	}
}

// recipeFields holds the validated attributes shared by create and update.
// A nil field is left untouched.
type recipeFields struct {
	Title       *string
	Ingredients *[]string
	Steps       *[]string
	PrepTime    *int
	Difficulty  *string
	Category    *string
}

func (s *recipeService) apply(ctx context.Context, recipe *entities.Recipe, f recipeFields, failure string) error {
	if f.Title != nil {
		if n := utf8.RuneCountInString(*f.Title); n < domain.TitleMinLength || n > domain.TitleMaxLength {
			return domain.NewValidationError(domain.MessageTitleLength)
		}
	}

	var ingredients, steps []string
	if f.Ingredients != nil {
		if ingredients = cleanList(*f.Ingredients); len(ingredients) == 0 {
			return domain.NewValidationError(domain.MessageIngredientRequired)
		}
	}
	if f.Steps != nil {
		if steps = cleanList(*f.Steps); len(steps) == 0 {
			return domain.NewValidationError(domain.MessageStepRequired)
		}
	}
	if f.PrepTime != nil && *f.PrepTime <= 0 {
		return domain.NewValidationError(domain.MessagePrepTimeInvalid)
	}

	var difficulty string
	if f.Difficulty != nil {
		difficulty = strings.ToLower(strings.TrimSpace(*f.Difficulty))
		if difficulty != "" && !slices.Contains(domain.Difficulties, difficulty) {
			return domain.NewValidationError(domain.MessageDifficultyInvalid)
		}
	}

	if f.Category != nil {
		if *f.Category == "" {
			return domain.NewValidationError(domain.MessageRecipeRequired)
		}
		exists, err := s.recipeRepository.CategoryExists(ctx, *f.Category)
		if err != nil {
			return domain.NewInternalError(failure, err)
		}
		if !exists {
			return domain.CategoryNotFound(*f.Category)
		}
	}

	if f.Title != nil {
		recipe.Title = *f.Title
	}
	if f.Ingredients != nil {
		recipe.Ingredients = datatypes.JSONSlice[string](ingredients)
	}
	if f.Steps != nil {
		recipe.Steps = datatypes.JSONSlice[string](steps)
	}
	if f.PrepTime != nil {
		prepTime := *f.PrepTime
		recipe.PrepTime = &prepTime
	}
	if f.Difficulty != nil {
		recipe.Difficulty = difficulty
	}
	if f.Category != nil {
		recipe.Category = *f.Category
	}
	return nil
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func recipeIDs(recipes []*entities.Recipe) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	return ids
}

func withRating(recipe domain.Recipe, stat domain.RatingStat) domain.RatedRecipe {
	return domain.RatedRecipe{
		Recipe:        recipe,
		AverageRating: domain.AverageRating(stat.Sum, stat.Count),
		RatingCount:   stat.Count,
	}
}

// ToRecipe shapes a stored recipe, with its preloaded author, for responses.
func ToRecipe(recipe *entities.Recipe) domain.Recipe {
	res := domain.Recipe{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
		Ingredients: append([]string{}, recipe.Ingredients...),
		Steps:       append([]string{}, recipe.Steps...),
		PrepTime:    recipe.PrepTime,
		Difficulty:  recipe.Difficulty,
		Category:    recipe.Category,
		ImageURL:    recipe.ImageURL,
		Author:      domain.Author{ID: recipe.AuthorID.String()},
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
	if recipe.Author != nil {
		res.Author.Name = recipe.Author.Name
		res.Author.Email = recipe.Author.Email
	}
	return res
}
