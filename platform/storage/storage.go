package storage

import (
	"context"
	"fmt"
	"time"

	"music_chat_backend/config"
	"music_chat_backend/models"
	"music_chat_backend/pkg/logging"
	"music_chat_backend/utils"

	"github.com/minio/minio-go/v7"
)

type Service struct {
	Client           *minio.Client
	Config           *minio.Options
	Bucket           string
	StorageType      string
	FileKeyGenerator *utils.FileKeyGenerator
	uploadTTL        time.Duration
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	var minioClient *minio.Client
	var err error

	// local vs s3
	switch cfg.StorageType {
	case "minio":
		minioClient, err = utils.CreateMinIOClient(cfg)
	case "s3":
		minioClient, err = utils.CreateS3Client(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}

	keyGenerator := utils.NewFileKeyGenerator(utils.StrategyDateBased, "sketches")
	ss := &Service{
		Client:           minioClient,
		Config:           &minio.Options{Region: cfg.BucketRegion},
		Bucket:           cfg.BucketName,
		StorageType:      cfg.StorageType,
		FileKeyGenerator: keyGenerator,
		uploadTTL:        cfg.UploadTimeout,
	}
	if err := ss.EnsureBucketExists(); err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}
	logging.Logger.Info("Storage service initialized",
		"type", cfg.StorageType,
		"bucket", cfg.BucketName,
		"region", cfg.BucketRegion,
	)

	return ss, nil
}

func (ss *Service) EnsureBucketExists() error {
	ctx := context.Background()
	exists, err := ss.Client.BucketExists(ctx, ss.Bucket)
	if err != nil {
		logging.Logger.Error("fail EnsureBucketExists", "error", err)
		return err
	}
	if exists {
		return nil
	}
	err = ss.Client.MakeBucket(ctx, ss.Bucket, minio.MakeBucketOptions{
		Region: ss.Config.Region,
	})
	if err != nil {
		if ss.StorageType == "s3" {
			logging.Logger.Warn("Could not create S3 bucket (might exist or no permission)",
				"bucket", ss.Bucket, "error", err)
			return nil
		}
		logging.Logger.Error("fail EnsureBucketExists", "error", err)
		return err
	}
	logging.Logger.Info("Bucket created successfully")
	return nil
}

// GenerateAudioUploadTicket issues a presigned POST the client uses to push
// sketch bytes directly to the bucket. Only audio content types are allowed.
func (ss *Service) GenerateAudioUploadTicket(filename string, maxFileSize int64) (*models.AudioUploadTicket, error) {
	fileKey := ss.FileKeyGenerator.GenerateFileKey(filename, "")

	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(ss.Bucket); err != nil {
		return nil, err
	}
	if err := policy.SetKey(fileKey); err != nil {
		return nil, err
	}
	expires := time.Now().Add(ss.uploadTTL)
	if err := policy.SetExpires(expires); err != nil {
		return nil, err
	}
	if maxFileSize > 0 {
		if err := policy.SetContentLengthRange(1, maxFileSize); err != nil {
			return nil, err
		}
	}
	if err := policy.SetContentTypeStartsWith("audio/"); err != nil {
		return nil, err
	}

	postURL, formData, err := ss.Client.PresignedPostPolicy(context.Background(), policy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned POST: %w", err)
	}

	return &models.AudioUploadTicket{
		UploadURL: postURL.String(),
		FileKey:   fileKey,
		Fields:    formData,
		Expires:   expires,
		Provider:  ss.StorageType,
	}, nil
}

func (ss *Service) GeneratePresignedGetDownload(fileKey string, expiration time.Time) (string, error) {
	duration := time.Until(expiration)
	if duration <= 0 {
		return "", fmt.Errorf("expiration %s is in the past", expiration)
	}
	presignedURL, err := ss.Client.PresignedGetObject(
		context.Background(),
		ss.Bucket,
		fileKey,
		duration,
		nil,
	)
	if err != nil {
		logging.Logger.Error("fail GeneratePresignedGetDownload", "error", err)
		return "", err
	}
	return presignedURL.String(), nil
}

func (ss *Service) FileExists(fileKey string) (bool, error) {
	_, err := ss.Client.StatObject(context.Background(), ss.Bucket, fileKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
