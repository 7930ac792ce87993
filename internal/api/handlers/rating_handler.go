package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/rating"

	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		RateRecipe(c *fiber.Ctx) error
		GetRecipeRatings(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
	}
)

func NewRatingHandler(ratingService rating.RatingService) RatingHandler {
	return &ratingHandler{ratingService: ratingService}
}

func (h *ratingHandler) RateRecipe(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedAddRating)
	}

	req := new(domain.RatingRequest)
	if err := c.BodyParser(req); err != nil {
		// non-integer ratings fail to decode
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageRatingInvalid, err)
	}

	res, created, err := h.ratingService.UpsertRating(c.UserContext(), c.Params("recipeId"), *req, identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedAddRating)
	}

	if created {
		return presenters.SuccessResponse(c, domain.RatingResponse{
			Message: domain.MessageSuccessRatingAdded,
			Rating:  res,
		}, fiber.StatusCreated)
	}
	return presenters.SuccessResponse(c, domain.RatingResponse{
		Message: domain.MessageSuccessRatingUpdated,
		Rating:  res,
	}, fiber.StatusOK)
}

func (h *ratingHandler) GetRecipeRatings(c *fiber.Ctx) error {
	res, err := h.ratingService.GetRecipeRatings(c.UserContext(), c.Params("recipeId"))
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedGetRatings)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
