package media

import (
	"campuscook/domain"
	"campuscook/internal/utils/storage"
	"context"
)

type (
	MediaService interface {
		UploadRecipeImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.UploadImageResponse, error)
	}

	mediaService struct {
		s3 storage.AwsS3
	}
)

func NewMediaService(s3 storage.AwsS3) MediaService {
	return &mediaService{s3: s3}
}

func (s *mediaService) UploadRecipeImage(ctx context.Context, req domain.UploadImageRequest, userID string) (domain.UploadImageResponse, error) {
	if req.Image == nil {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}

	objectKey, err := s.s3.UploadFile(ctx, req.Image, domain.RecipeImageFolder(userID), storage.AllowImage...)
	if err != nil {
		if _, ok := domain.AsAppError(err); ok {
			return domain.UploadImageResponse{}, err
		}
		return domain.UploadImageResponse{}, domain.NewInternalError(domain.MessageFailedUploadImage, err)
	}

	return domain.UploadImageResponse{ImageURL: s.s3.GetPublicLinkKey(objectKey)}, nil
}
