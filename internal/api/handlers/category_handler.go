package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/pkg/category"

	"github.com/gofiber/fiber/v2"
)

type (
	CategoryHandler interface {
		GetCategories(c *fiber.Ctx) error
	}

	categoryHandler struct {
		categoryService category.CategoryService
	}
)

func NewCategoryHandler(categoryService category.CategoryService) CategoryHandler {
	return &categoryHandler{categoryService: categoryService}
}

func (h *categoryHandler) GetCategories(c *fiber.Ctx) error {
	res, err := h.categoryService.GetCategories(c.UserContext())
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetCategories)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
