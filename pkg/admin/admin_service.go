package admin

import (
	"campuscook/domain"
	"context"
)

type (
	AdminService interface {
		GetDashboard(ctx context.Context) (domain.DashboardResponse, error)
	}

	adminService struct {
		adminRepository AdminRepository
	}
)

func NewAdminService(adminRepository AdminRepository) AdminService {
	return &adminService{adminRepository: adminRepository}
}

// GetDashboard assumes the caller's admin role was checked by middleware.
func (s *adminService) GetDashboard(ctx context.Context) (domain.DashboardResponse, error) {
	stats, err := s.adminRepository.GetStatistics(ctx)
	if err != nil {
		return domain.DashboardResponse{}, domain.NewInternalError(domain.MessageFailedGetDashboard, err)
	}

	recipes, err := s.adminRepository.GetRecentRecipes(ctx, domain.RecentRecipesLimit)
	if err != nil {
		return domain.DashboardResponse{}, domain.NewInternalError(domain.MessageFailedGetDashboard, err)
	}

	res := domain.DashboardResponse{
		Statistics:    stats,
		RecentRecipes: make([]domain.RecentRecipe, 0, len(recipes)),
	}
	for _, recipe := range recipes {
		recent := domain.RecentRecipe{
			ID:        recipe.ID.String(),
			Title:     recipe.Title,
			Category:  recipe.Category,
			CreatedAt: recipe.CreatedAt,
		}
		if recipe.Author != nil {
			recent.Author = recipe.Author.Name
		}
		res.RecentRecipes = append(res.RecentRecipes, recent)
	}
	return res, nil
}
