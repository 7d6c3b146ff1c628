package services

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"anime-stream/internal/apperror"
	"anime-stream/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// PosterStore is the part of object storage the anime manager relies on to
// clean up replaced or orphaned posters.
type PosterStore interface {
	Owns(url string) bool
	DeleteByURL(ctx context.Context, url string) error
}

var allowedPosterExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type PresignedUpload struct {
	UploadURL   string    `json:"presigned_url"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type MinIOService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	expiry    time.Duration
	logger    *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	service := &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		expiry:    cfg.PresignExpiry,
		logger:    logger,
	}

	if err := service.ensureBucket(context.Background(), cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

func (s *MinIOService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// PresignPosterUpload returns a short-lived PUT URL for an image and the
// public URL the object will be served from once uploaded.
func (s *MinIOService) PresignPosterUpload(ctx context.Context, filename string) (*PresignedUpload, error) {
	objectName, contentType, err := posterObjectName(filename)
	if err != nil {
		return nil, err
	}

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, s.expiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectName": objectName,
		"expiry":     s.expiry,
	}).Info("Generated presigned URL")

	return &PresignedUpload{
		UploadURL:   presignedURL.String(),
		PublicURL:   s.publicURL + "/" + objectName,
		ContentType: contentType,
		ExpiresAt:   time.Now().UTC().Add(s.expiry),
	}, nil
}

func (s *MinIOService) Owns(url string) bool {
	return s.publicURL != "" && strings.HasPrefix(url, s.publicURL+"/")
}

func (s *MinIOService) DeleteByURL(ctx context.Context, url string) error {
	if !s.Owns(url) {
		return nil
	}
	objectName := strings.TrimPrefix(url, s.publicURL+"/")
	if idx := strings.IndexAny(objectName, "?#"); idx != -1 {
		objectName = objectName[:idx]
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectName", objectName).Error("Failed to delete poster")
		return fmt.Errorf("failed to delete poster: %w", err)
	}

	s.logger.WithField("objectName", objectName).Info("Poster deleted from MinIO")
	return nil
}

func posterObjectName(filename string) (string, string, error) {
	base := path.Base(filepath.ToSlash(strings.TrimSpace(filename)))
	ext := strings.ToLower(filepath.Ext(base))
	contentType, ok := allowedPosterExt[ext]
	if !ok {
		verr := apperror.NewValidationError()
		verr.Add("filename", fmt.Sprintf("unsupported poster type %q", ext))
		return "", "", verr
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" {
		name = "poster"
	}
	return fmt.Sprintf("%s_%s%s", name, uuid.New().String()[:8], ext), contentType, nil
}
