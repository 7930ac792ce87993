package domain

import "time"

var (
	MessageFailedGetDashboard = "An error occurred while fetching dashboard data"
)

type (
	DashboardStatistics struct {
		TotalUsers     int64 `json:"totalUsers"`
		TotalRecipes   int64 `json:"totalRecipes"`
		TotalRatings   int64 `json:"totalRatings"`
		TotalFavorites int64 `json:"totalFavorites"`
	}

	RecentRecipe struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Author    string    `json:"author"`
		Category  string    `json:"category"`
		CreatedAt time.Time `json:"createdAt"`
	}

	DashboardResponse struct {
		Statistics    DashboardStatistics `json:"statistics"`
		RecentRecipes []RecentRecipe      `json:"recentRecipes"`
	}
)
