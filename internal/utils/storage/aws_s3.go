package storage

import (
	"bytes"
	"campuscook/domain"
	"campuscook/internal/utils"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var AllowImage = domain.AllowedImageTypes

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	S3API interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client S3API
		bucket string
		region string
	}
)

// NewAwsS3 builds a client from static keys when given, otherwise from the
// default AWS credential chain.
func NewAwsS3(ctx context.Context, cfg utils.Config) (AwsS3, error) {
	if !cfg.S3Enabled() {
		return nil, domain.ErrStorageNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSS3Region)}
	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return NewAwsS3WithClient(s3.NewFromConfig(awsCfg), cfg.AWSS3Bucket, cfg.AWSS3Region), nil
}

func NewAwsS3WithClient(client S3API, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

// UploadFile sniffs the content type, rejects anything outside allowed and
// stores the file under folder with a random name.
func (a *awsS3) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file == nil {
		return "", domain.ErrImageRequired
	}
	if file.Size > domain.MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, domain.MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(content) > domain.MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	mtype := mimetype.Detect(content)
	if len(allowed) > 0 && !slices.ContainsFunc(allowed, mtype.Is) {
		return "", domain.ErrInvalidImageFormat
	}

	objectKey := path.Join(folder, uuid.NewString()+mtype.Extension())
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("%s/%s", a.baseURL(), objectKey)
}

// GetObjectKeyFromLink returns "" for links that do not point into the bucket.
func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := a.baseURL() + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (a *awsS3) baseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", a.bucket, a.region)
}
