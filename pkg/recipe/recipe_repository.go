package recipe

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipes(ctx context.Context, req domain.RecipeListRequest) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID string) ([]*entities.Recipe, error)
		RecipeExists(ctx context.Context, id string) (bool, error)
		CategoryExists(ctx context.Context, name string) (bool, error)
		CountRecipesByImage(ctx context.Context, imageURL string) (int64, error)

		GetRatingStats(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]domain.RatingStat, error)
		GetFavoriteCounts(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error)
		IsRecipeFavorited(ctx context.Context, userID, recipeID string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

// sortColumns maps accepted sort keys to columns. rating and popularity are
// accepted but order by creation time.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"title":      "title",
	"prepTime":   "prep_time",
	"prep_time":  "prep_time",
	"difficulty": "difficulty",
	"rating":     "created_at",
	"popularity": "created_at",
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipes(ctx context.Context, req domain.RecipeListRequest) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "%" + utils.EscapeLike(strings.ToLower(search)) + "%"
		query = query.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR `+ingredientMatch(r.db.Dialector.Name())+`)`,
			pattern, pattern, pattern,
		)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.
		Preload("Author").
		Order(orderClause(req.Sort, req.Order)).
		Order("id").
		Offset(offset).
		Limit(req.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// ingredientMatch tests each decoded ingredient, so JSON quoting and
// escapes in the stored array never take part in the match.
func ingredientMatch(dialect string) string {
	if dialect == "postgres" {
		return `EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.ingredients) AS ingredient(value) WHERE LOWER(ingredient.value) LIKE ? ESCAPE '\')`
	}
	return `EXISTS (SELECT 1 FROM json_each(recipes.ingredients) AS ingredient WHERE LOWER(ingredient.value) LIKE ? ESCAPE '\')`
}

func orderClause(sort, order string) clause.OrderByColumn {
	column, ok := sortColumns[sort]
	if !ok {
		return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !strings.EqualFold(order, "asc"),
	}
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) RecipeExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CategoryExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRatingStats aggregates ratings for a page of recipes in one query.
func (r *recipeRepository) GetRatingStats(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]domain.RatingStat, error) {
	stats := make(map[uuid.UUID]domain.RatingStat, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		RecipeID    uuid.UUID
		RatingSum   int64
		RatingCount int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Rating{}).
		Select("recipe_id, SUM(rating) AS rating_sum, COUNT(*) AS rating_count").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.RecipeID] = domain.RatingStat{Sum: row.RatingSum, Count: row.RatingCount}
	}
	return stats, nil
}

func (r *recipeRepository) GetFavoriteCounts(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RecipeID      uuid.UUID
		FavoriteCount int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Select("recipe_id, COUNT(*) AS favorite_count").
		Where("recipe_id IN ?", recipeIDs).
		Group("recipe_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RecipeID] = row.FavoriteCount
	}
	return counts, nil
}

func (r *recipeRepository) IsRecipeFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CountRecipesByImage(ctx context.Context, imageURL string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("image_url = ?", imageURL).
		Count(&count).Error
	return count, err
}
