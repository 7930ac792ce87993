package category

import (
	"campuscook/domain"
	"context"
)

type (
	CategoryService interface {
		GetCategories(ctx context.Context) (domain.CategoriesResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) GetCategories(ctx context.Context) (domain.CategoriesResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return domain.CategoriesResponse{}, domain.NewInternalError(domain.MessageFailedGetCategories, err)
	}
	counts, err := s.categoryRepository.CountRecipesByCategory(ctx)
	if err != nil {
		return domain.CategoriesResponse{}, domain.NewInternalError(domain.MessageFailedGetCategories, err)
	}

	res := domain.CategoriesResponse{Categories: make([]domain.Category, 0, len(categories))}
	for _, category := range categories {
		res.Categories = append(res.Categories, domain.Category{
			ID:          category.ID.String(),
			Name:        category.Name,
			Description: category.Description,
			RecipeCount: counts[category.Name],
			CreatedAt:   category.CreatedAt,
		})
	}
	return res, nil
}
