package config

import (
	"os"
	"time"
)

type Config struct {
	HttpPort string

	// Assistant API (upstream producer of chat messages and task events)
	AssistantBaseURL string
	AssistantAPIKey  string
	AssistantTimeout time.Duration

	// S3/MinIO
	BucketEndpoint  string
	BucketAccessID  string
	BucketAccessKey string
	BucketName      string
	BucketRegion    string
	UseSSL          bool   // MinIO: false, S3: true
	StorageType     string //"minio" or "s3"

	// Redis
	RedisURL      string
	RedisPassword string

	// Postgres
	Host     string
	User     string
	Password string
	DBName   string
	Port     string

	// others
	UploadTimeout    time.Duration
	MaxAudioFileSize int64
}

func LoadConfig() *Config {
	return &Config{
		HttpPort:         os.Getenv("PORT"),
		AssistantBaseURL: os.Getenv("ASSISTANT_BASE_URL"),
		AssistantAPIKey:  os.Getenv("ASSISTANT_API_KEY"),
		AssistantTimeout: 60 * time.Second,
		BucketEndpoint:   os.Getenv("BUCKET_ENDPOINT"),
		BucketAccessID:   os.Getenv("BUCKET_ACCESS_ID"),
		BucketAccessKey:  os.Getenv("BUCKET_ACCESS_KEY"),
		BucketName:       os.Getenv("BUCKET_NAME"),
		BucketRegion:     os.Getenv("BUCKET_REGION"),
		RedisURL:         os.Getenv("REDIS_URL"),
		UseSSL:           os.Getenv("BUCKET_USE_SSL") == "true",
		StorageType:      os.Getenv("STORAGE_TYPE"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		UploadTimeout:    15 * time.Minute,
		MaxAudioFileSize: 100 * 1024 * 1024,
		Host:             os.Getenv("PG_HOST"),
		User:             os.Getenv("PG_USER"),
		Password:         os.Getenv("PG_PASSWORD"),
		DBName:           os.Getenv("PG_DB"),
		Port:             os.Getenv("PG_PORT"),
	}
}
