package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetUserRecipes(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	// QueryInt falls back to the default for missing or non-numeric values
	req := domain.RecipeListRequest{
		Page:     c.QueryInt("page", domain.DefaultPage),
		Limit:    c.QueryInt("limit", domain.DefaultLimit),
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort", "createdAt"),
		Order:    c.Query("order", "desc"),
	}

	res, err := h.recipeService.GetRecipes(c.UserContext(), req)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetRecipes)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedCreateRecipe)
	}

	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageRecipeRequired, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedCreateRecipe)
	}
	return presenters.SuccessResponse(c, domain.RecipeResponse{Recipe: res}, fiber.StatusCreated)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	identity, _ := middleware.GetIdentity(c)

	res, err := h.recipeService.GetRecipeDetail(c.UserContext(), c.Params("id"), identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetRecipeDetail)
	}
	return presenters.SuccessResponse(c, domain.RecipeResponse{Recipe: res}, fiber.StatusOK)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedUpdateRecipe)
	}

	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), c.Params("id"), *req, identity)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedUpdateRecipe)
	}
	return presenters.SuccessResponse(c, domain.RecipeResponse{Recipe: res}, fiber.StatusOK)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedDeleteRecipe)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), identity); err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedDeleteRecipe)
	}
	return presenters.SuccessResponse(c, fiber.Map{"message": domain.MessageSuccessDeleteRecipe}, fiber.StatusOK)
}

func (h *recipeHandler) GetUserRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipesByAuthor(c.UserContext(), c.Params("userId"))
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetUserRecipes)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
