package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/favorite"

	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		GetFavorites(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService) FavoriteHandler {
	return &favoriteHandler{favoriteService: favoriteService}
}

func (h *favoriteHandler) GetFavorites(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedGetFavorites)
	}

	res, err := h.favoriteService.GetFavorites(c.UserContext(), identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetFavorites)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *favoriteHandler) AddFavorite(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedAddFavorite)
	}

	res, created, err := h.favoriteService.AddFavorite(c.UserContext(), c.Params("recipeId"), identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedAddFavorite)
	}

	if created {
		return presenters.SuccessResponse(c, domain.FavoriteResponse{
			Message:  domain.MessageSuccessFavoriteAdded,
			Favorite: res,
		}, fiber.StatusCreated)
	}
	return presenters.SuccessResponse(c, domain.FavoriteResponse{
		Message:  domain.MessageSuccessFavoriteExists,
		Favorite: res,
	}, fiber.StatusOK)
}

func (h *favoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedRemoveFavorite)
	}

	if err := h.favoriteService.RemoveFavorite(c.UserContext(), c.Params("recipeId"), identity.UserID); err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedRemoveFavorite)
	}
	return presenters.SuccessResponse(c, fiber.Map{"message": domain.MessageSuccessFavoriteRemoved}, fiber.StatusOK)
}
