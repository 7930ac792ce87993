package recipe

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils/testdb"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, name, role string) domain.Identity {
	t.Helper()
	user := entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s-%s@x.com", name, uuid.NewString()[:8]),
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return domain.Identity{UserID: user.ID.String(), Email: user.Email, Role: role}
}

func validRecipe(title string) domain.CreateRecipeRequest {
	prepTime := 15
	return domain.CreateRecipeRequest{
		Title:       title,
		Description: "Quick and cheap",
		Ingredients: []string{"2 eggs", "salt"},
		Steps:       []string{"Whisk", "Fry"},
		PrepTime:    &prepTime,
		Difficulty:  "easy",
		Category:    "breakfast",
	}
}

func newTestService(t *testing.T) (RecipeService, *gorm.DB) {
	db := testdb.New(t)
	return NewRecipeService(NewRecipeRepository(db), nil), db
}

func TestCreateAndGetRecipe(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	created, err := svc.CreateRecipe(ctx, validRecipe("  Scrambled Eggs  "), author.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Scrambled Eggs", created.Title)
	assert.Equal(t, author.UserID, created.Author.ID)
	assert.Equal(t, "ann", created.Author.Name)
	assert.Zero(t, created.RatingCount)

	got, err := svc.GetRecipeDetail(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, []string{"2 eggs", "salt"}, got.Ingredients)
	assert.Equal(t, []string{"Whisk", "Fry"}, got.Steps)
	require.NotNil(t, got.PrepTime)
	assert.Equal(t, 15, *got.PrepTime)
	assert.False(t, got.IsFavorited)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	zero, negative := 0, -5
	tests := map[string]func(r *domain.CreateRecipeRequest){
		"missing title":        func(r *domain.CreateRecipeRequest) { r.Title = "" },
		"title too short":      func(r *domain.CreateRecipeRequest) { r.Title = " Egg " },
		"title too long":       func(r *domain.CreateRecipeRequest) { r.Title = strings.Repeat("a", 201) },
		"no ingredients":       func(r *domain.CreateRecipeRequest) { r.Ingredients = []string{} },
		"blank ingredients":    func(r *domain.CreateRecipeRequest) { r.Ingredients = []string{"  "} },
		"no steps":             func(r *domain.CreateRecipeRequest) { r.Steps = nil },
		"zero prep time":       func(r *domain.CreateRecipeRequest) { r.PrepTime = &zero },
		"negative prep time":   func(r *domain.CreateRecipeRequest) { r.PrepTime = &negative },
		"unknown difficulty":   func(r *domain.CreateRecipeRequest) { r.Difficulty = "extreme" },
		"missing category":     func(r *domain.CreateRecipeRequest) { r.Category = "" },
		"nonexistent category": func(r *domain.CreateRecipeRequest) { r.Category = "NotReal" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := validRecipe("Valid Title")
			mutate(&req)

			_, err := svc.CreateRecipe(ctx, req, author.UserID)
			appErr, ok := domain.AsAppError(err)
			require.True(t, ok, "expected app error, got %v", err)
			assert.Equal(t, domain.KindValidation, appErr.Kind)
		})
	}

	var count int64
	require.NoError(t, db.Model(&entities.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetRecipeDetailErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetRecipeDetail(ctx, "not-a-uuid", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRecipeID)

	_, err = svc.GetRecipeDetail(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipeDetailFavoritedFlag(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)
	fan := createUser(t, db, "bob", domain.RoleUser)

	created, err := svc.CreateRecipe(ctx, validRecipe("Banana Bread"), author.UserID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Favorite{
		ID:       uuid.New(),
		UserID:   uuid.MustParse(fan.UserID),
		RecipeID: uuid.MustParse(created.ID),
	}).Error)

	asFan, err := svc.GetRecipeDetail(ctx, created.ID, fan.UserID)
	require.NoError(t, err)
	assert.True(t, asFan.IsFavorited)

	asAuthor, err := svc.GetRecipeDetail(ctx, created.ID, author.UserID)
	require.NoError(t, err)
	assert.False(t, asAuthor.IsFavorited)
}

func TestPagination(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	const total = 23
	for i := 0; i < total; i++ {
		_, err := svc.CreateRecipe(ctx, validRecipe(fmt.Sprintf("Recipe number %02d", i)), author.UserID)
		require.NoError(t, err)
	}

	for _, limit := range []int{1, 5, 7, 10, 23, 50} {
		totalPages := (total + limit - 1) / limit
		for page := 1; page <= totalPages+1; page++ {
			res, err := svc.GetRecipes(ctx, domain.RecipeListRequest{Page: page, Limit: limit})
			require.NoError(t, err)

			want := max(0, min(limit, total-(page-1)*limit))
			assert.Len(t, res.Recipes, want, "limit=%d page=%d", limit, page)
			assert.Equal(t, totalPages, res.Pagination.TotalPages)
			assert.Equal(t, int64(total), res.Pagination.TotalRecipes)
			assert.Equal(t, page < totalPages, res.Pagination.HasNextPage)
			assert.Equal(t, page > 1, res.Pagination.HasPrevPage)
		}
	}
}

func TestListDefaultsAndCap(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.GetRecipes(ctx, domain.RecipeListRequest{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, res.Pagination.CurrentPage)
	assert.Equal(t, domain.DefaultLimit, res.Pagination.Limit)
	assert.NotNil(t, res.Recipes)

	res, err = svc.GetRecipes(ctx, domain.RecipeListRequest{Page: 1, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxLimit, res.Pagination.Limit)
}

func TestSearchAndCategoryFilter(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	pancakes := validRecipe("Fluffy Pancakes")
	pancakes.Ingredients = []string{"flour", "milk"}
	soup := validRecipe("Tomato Soup")
	soup.Category = "dinner"
	soup.Description = "Creamy and warm"
	soup.Ingredients = []string{"tomatoes", "cream"}
	salad := validRecipe("Green Salad")
	salad.Category = "lunch"
	salad.Description = "100% fresh"
	salad.Ingredients = []string{"lettuce", "Milk powder"}

	for _, req := range []domain.CreateRecipeRequest{pancakes, soup, salad} {
		_, err := svc.CreateRecipe(ctx, req, author.UserID)
		require.NoError(t, err)
	}

	titles := func(req domain.RecipeListRequest) []string {
		res, err := svc.GetRecipes(ctx, req)
		require.NoError(t, err)
		out := make([]string, 0, len(res.Recipes))
		for _, r := range res.Recipes {
			out = append(out, r.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Fluffy Pancakes"}, titles(domain.RecipeListRequest{Search: "PANCAKE"}))
	assert.ElementsMatch(t, []string{"Tomato Soup"}, titles(domain.RecipeListRequest{Search: "creamy"}))
	assert.ElementsMatch(t, []string{"Fluffy Pancakes", "Green Salad"}, titles(domain.RecipeListRequest{Search: "milk"}))
	assert.ElementsMatch(t, []string{"Green Salad"}, titles(domain.RecipeListRequest{Search: "100%"}))
	assert.Empty(t, titles(domain.RecipeListRequest{Search: "_"}))
	assert.ElementsMatch(t, []string{"Tomato Soup"}, titles(domain.RecipeListRequest{Category: "dinner"}))
	assert.Empty(t, titles(domain.RecipeListRequest{Category: "dinner", Search: "milk"}))
	assert.Empty(t, titles(domain.RecipeListRequest{Category: "Dinner"}))
}

func TestSearchMatchesWholeIngredients(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	seasoned := validRecipe("Seasoned Fries")
	seasoned.Ingredients = []string{"Salt & Pepper", "potatoes"}
	tagged := validRecipe("Tagged Toast")
	tagged.Ingredients = []string{"bread <white>", `1/2 "heaped" spoon butter`}
	for _, req := range []domain.CreateRecipeRequest{seasoned, tagged} {
		_, err := svc.CreateRecipe(ctx, req, author.UserID)
		require.NoError(t, err)
	}

	count := func(search string) int64 {
		res, err := svc.GetRecipes(ctx, domain.RecipeListRequest{Search: search})
		require.NoError(t, err)
		return res.Pagination.TotalRecipes
	}

	assert.Equal(t, int64(1), count("salt & pepper"))
	assert.Equal(t, int64(1), count("<white>"))
	assert.Equal(t, int64(1), count(`"heaped"`))
	assert.Equal(t, int64(1), count("potatoes"))
	// only the stored JSON text contains these
	assert.Zero(t, count(`","`))
	assert.Zero(t, count(`["`))
	assert.Zero(t, count(`\u0026`))
	assert.Zero(t, count("pepper potatoes"))
}

func TestSorting(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Bravo recipe", "Alpha recipe", "Charlie recipe"} {
		created, err := svc.CreateRecipe(ctx, validRecipe(title), author.UserID)
		require.NoError(t, err)
		require.NoError(t, db.Model(&entities.Recipe{}).
			Where("id = ?", created.ID).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}

	titles := func(sort, order string) []string {
		res, err := svc.GetRecipes(ctx, domain.RecipeListRequest{Sort: sort, Order: order})
		require.NoError(t, err)
		out := make([]string, 0, len(res.Recipes))
		for _, r := range res.Recipes {
			out = append(out, r.Title)
		}
		return out
	}

	newestFirst := []string{"Charlie recipe", "Alpha recipe", "Bravo recipe"}
	oldestFirst := []string{"Bravo recipe", "Alpha recipe", "Charlie recipe"}

	assert.Equal(t, newestFirst, titles("", ""))
	assert.Equal(t, newestFirst, titles("createdAt", "desc"))
	assert.Equal(t, oldestFirst, titles("createdAt", "asc"))
	assert.Equal(t, []string{"Alpha recipe", "Bravo recipe", "Charlie recipe"}, titles("title", "asc"))
	assert.Equal(t, oldestFirst, titles("rating", "asc"))
	assert.Equal(t, newestFirst, titles("popularity", "desc"))
	assert.Equal(t, newestFirst, titles("bogus", "asc"))
}

func TestUpdateRecipe(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	created, err := svc.CreateRecipe(ctx, validRecipe("Plain Omelette"), author.UserID)
	require.NoError(t, err)

	title := "Cheese Omelette"
	ingredients := []string{"eggs", "cheese"}
	updated, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{
		Title:       &title,
		Ingredients: &ingredients,
	}, author)
	require.NoError(t, err)

	assert.Equal(t, "Cheese Omelette", updated.Title)
	assert.Equal(t, []string{"eggs", "cheese"}, updated.Ingredients)
	assert.Equal(t, created.Steps, updated.Steps, "unsupplied fields are kept")
	assert.Equal(t, created.Category, updated.Category)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "creation time is preserved")
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	bad := "Egg"
	_, err = svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Title: &bad}, author)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, appErr.Kind)

	missing := "NotReal"
	_, err = svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Category: &missing}, author)
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindValidation, appErr.Kind)

	_, err = svc.UpdateRecipe(ctx, uuid.NewString(), domain.UpdateRecipeRequest{Title: &title}, author)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestOwnershipEnforcement(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)
	stranger := createUser(t, db, "eve", domain.RoleUser)
	admin := createUser(t, db, "root", domain.RoleAdmin)

	created, err := svc.CreateRecipe(ctx, validRecipe("Guarded Recipe"), author.UserID)
	require.NoError(t, err)

	title := "Hijacked Recipe"
	_, err = svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Title: &title}, stranger)
	assert.ErrorIs(t, err, domain.ErrRecipeEditForbidden)

	err = svc.DeleteRecipe(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, domain.ErrRecipeDeleteForbidden)

	unchanged, err := svc.GetRecipeDetail(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Guarded Recipe", unchanged.Title)
	assert.True(t, created.UpdatedAt.Equal(unchanged.UpdatedAt))

	byAdmin, err := svc.UpdateRecipe(ctx, created.ID, domain.UpdateRecipeRequest{Title: &title}, admin)
	require.NoError(t, err)
	assert.Equal(t, title, byAdmin.Title)
	assert.Equal(t, author.UserID, byAdmin.Author.ID, "admin edits keep the author")

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, admin))
	_, err = svc.GetRecipeDetail(ctx, created.ID, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipeKeepsRatingsAndFavorites(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)

	created, err := svc.CreateRecipe(ctx, validRecipe("Short Lived"), author.UserID)
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)
	userID := uuid.MustParse(author.UserID)

	require.NoError(t, db.Create(&entities.Rating{ID: uuid.New(), UserID: userID, RecipeID: recipeID, Rating: 4}).Error)
	require.NoError(t, db.Create(&entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}).Error)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID, author))

	var ratings, favorites int64
	require.NoError(t, db.Model(&entities.Rating{}).Count(&ratings).Error)
	require.NoError(t, db.Model(&entities.Favorite{}).Count(&favorites).Error)
	assert.Equal(t, int64(1), ratings)
	assert.Equal(t, int64(1), favorites)
}

func TestRatingsOnListAndAuthorPage(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	author := createUser(t, db, "ann", domain.RoleUser)
	other := createUser(t, db, "bob", domain.RoleUser)

	rated, err := svc.CreateRecipe(ctx, validRecipe("Rated Recipe"), author.UserID)
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, validRecipe("Unrated Recipe"), author.UserID)
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, validRecipe("Someone Else's"), other.UserID)
	require.NoError(t, err)

	recipeID := uuid.MustParse(rated.ID)
	for i, value := range []int{5, 4, 4} {
		rater := createUser(t, db, fmt.Sprintf("rater%d", i), domain.RoleUser)
		require.NoError(t, db.Create(&entities.Rating{
			ID: uuid.New(), UserID: uuid.MustParse(rater.UserID), RecipeID: recipeID, Rating: value,
		}).Error)
	}
	require.NoError(t, db.Create(&entities.Favorite{
		ID: uuid.New(), UserID: uuid.MustParse(other.UserID), RecipeID: recipeID,
	}).Error)

	list, err := svc.GetRecipes(ctx, domain.RecipeListRequest{Search: "rated recipe"})
	require.NoError(t, err)
	byTitle := map[string]domain.RatedRecipe{}
	for _, r := range list.Recipes {
		byTitle[r.Title] = r
	}
	assert.Equal(t, 4.3, byTitle["Rated Recipe"].AverageRating)
	assert.Equal(t, int64(3), byTitle["Rated Recipe"].RatingCount)
	assert.Zero(t, byTitle["Unrated Recipe"].AverageRating)
	assert.Zero(t, byTitle["Unrated Recipe"].RatingCount)

	mine, err := svc.GetRecipesByAuthor(ctx, author.UserID)
	require.NoError(t, err)
	require.Len(t, mine.Recipes, 2)
	for _, r := range mine.Recipes {
		if r.ID == rated.ID {
			assert.Equal(t, 4.3, r.AverageRating)
			assert.Equal(t, int64(1), r.FavoriteCount)
		} else {
			assert.Zero(t, r.FavoriteCount)
		}
	}

	_, err = svc.GetRecipesByAuthor(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}
