package admin

import (
	"campuscook/domain"
	"campuscook/entities"
	"campuscook/internal/utils/testdb"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedRecipes(t *testing.T, db *gorm.DB, author entities.User, n int) []entities.Recipe {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	recipes := make([]entities.Recipe, 0, n)
	for i := range n {
		r := entities.Recipe{
			ID:          uuid.New(),
			Title:       fmt.Sprintf("Recipe number %02d", i),
			Ingredients: datatypes.JSONSlice[string]{"x"},
			Steps:       datatypes.JSONSlice[string]{"y"},
			Category:    "lunch",
			AuthorID:    author.ID,
			Timestamp: entities.Timestamp{
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
				UpdatedAt: base.Add(time.Duration(i) * time.Minute),
			},
		}
		require.NoError(t, db.Omit("Author").Create(&r).Error)
		recipes = append(recipes, r)
	}
	return recipes
}

func TestGetDashboard(t *testing.T) {
	db := testdb.New(t)
	svc := NewAdminService(NewAdminRepository(db))
	ctx := context.Background()

	author := entities.User{ID: uuid.New(), Name: "ann", Email: "ann@x.com", PasswordHash: "hash", Role: domain.RoleUser}
	fan := entities.User{ID: uuid.New(), Name: "bob", Email: "bob@x.com", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, db.Create(&fan).Error)

	recipes := seedRecipes(t, db, author, 12)
	for _, r := range recipes[:3] {
		require.NoError(t, db.Omit("User").Create(&entities.Rating{ID: uuid.New(), UserID: fan.ID, RecipeID: r.ID, Rating: 4}).Error)
		require.NoError(t, db.Omit("User", "Recipe").Create(&entities.Favorite{ID: uuid.New(), UserID: fan.ID, RecipeID: r.ID}).Error)
	}

	res, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStatistics{
		TotalUsers:     2,
		TotalRecipes:   12,
		TotalRatings:   3,
		TotalFavorites: 3,
	}, res.Statistics)

	require.Len(t, res.RecentRecipes, domain.RecentRecipesLimit)
	assert.Equal(t, "Recipe number 11", res.RecentRecipes[0].Title)
	assert.Equal(t, "Recipe number 02", res.RecentRecipes[9].Title)
	assert.Equal(t, "ann", res.RecentRecipes[0].Author)

	// orphaned ratings and favorites stop counting once their recipe is gone
	require.NoError(t, db.Where("id = ?", recipes[0].ID).Delete(&entities.Recipe{}).Error)
	res, err = svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), res.Statistics.TotalRecipes)
	assert.Equal(t, int64(2), res.Statistics.TotalRatings)
	assert.Equal(t, int64(2), res.Statistics.TotalFavorites)
}

func TestGetDashboardEmpty(t *testing.T) {
	db := testdb.New(t)
	svc := NewAdminService(NewAdminRepository(db))

	res, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.Statistics.TotalRecipes)
	assert.NotNil(t, res.RecentRecipes)
	assert.Empty(t, res.RecentRecipes)
}
