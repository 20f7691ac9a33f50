package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"linkpage.backend/internal/config"
)

const presignExpiry = 15 * time.Minute

// PresignedUpload is what a client needs to PUT an avatar directly to
// object storage.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}

// AvatarStorage issues presigned upload URLs against an S3-compatible
// bucket (AWS S3 or MinIO).
type AvatarStorage struct {
	cfg config.StorageConfig
}

// NewAvatarStorage creates an avatar storage backed by the configured bucket
func NewAvatarStorage(cfg config.StorageConfig) *AvatarStorage {
	return &AvatarStorage{cfg: cfg}
}

func (s *AvatarStorage) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return s3.NewPresignClient(client), nil
}

// PresignAvatarUpload returns a short-lived PUT URL for the user's avatar.
// The key embeds the user ID so re-uploads replace the old object path
// without a cleanup pass per upload.
func (s *AvatarStorage) PresignAvatarUpload(ctx context.Context, userID uuid.UUID, contentType string) (*PresignedUpload, error) {
	presignClient, err := s.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	key := avatarKey(userID, contentType)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.Bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		Key:       key,
		PublicURL: s.publicURL(key),
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

func (s *AvatarStorage) publicURL(key string) string {
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func avatarKey(userID uuid.UUID, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	}
	return fmt.Sprintf("avatars/%s%s", userID, ext)
}
