package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageFailedUploadImage = "An error occurred while uploading the image"

	ErrImageRequired      = NewValidationError("An image file is required")
	ErrImageTooLarge      = NewValidationError("Image must not exceed 5 MB")
	ErrInvalidImageFormat = NewValidationError("Image must be a JPEG, PNG, WEBP, or GIF file")

	ErrStorageNotConfigured = errors.New("object storage not configured")
)

const MaxImageSize = 5 << 20

var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// RecipeImageFolder is the object key folder holding one user's uploads.
func RecipeImageFolder(userID string) string {
	return "recipes/" + userID
}

type (
	UploadImageRequest struct {
		Image *multipart.FileHeader `form:"image"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
