package handlers

import (
	"campuscook/domain"
	"campuscook/internal/api/presenters"
	"campuscook/internal/middleware"
	"campuscook/pkg/media"

	"github.com/gofiber/fiber/v2"
)

type (
	UploadHandler interface {
		UploadRecipeImage(c *fiber.Ctx) error
	}

	uploadHandler struct {
		mediaService media.MediaService
	}
)

func NewUploadHandler(mediaService media.MediaService) UploadHandler {
	return &uploadHandler{mediaService: mediaService}
}

func (h *uploadHandler) UploadRecipeImage(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return presenters.HandleError(c, domain.ErrNotAuthenticated, domain.MessageFailedUploadImage)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.HandleError(c, domain.ErrImageRequired, domain.MessageFailedUploadImage)
	}

	res, err := h.mediaService.UploadRecipeImage(c.UserContext(), domain.UploadImageRequest{Image: image}, identity.UserID)
	if err != nil {
		return presenters.HandleError(c, err, domain.MessageFailedUploadImage)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}
